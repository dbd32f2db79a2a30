// Package file implements the flat-file ledger store: a delimited text
// file with a date,category,amount header and one record per line.
package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"tally/internal/core"
	applog "tally/internal/log"
)

var header = []string{"date", "category", "amount"}

// Store reads and appends records in a single CSV file. The file is
// opened, used and closed on every operation; there is exactly one writer
// so no file locking is needed. The mutex only serializes handlers within
// this process.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the ledger file location.
func (s *Store) Path() string {
	return s.path
}

// Append validates the record and writes it as a new row, creating the
// file (and its directory) with a header on first use. The returned row
// reference is the record's 1-based data-row position in the file, header
// excluded, counting rows that fail to parse.
func (s *Store) Append(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFile(); err != nil {
		return "", err
	}

	existing, err := s.countDataRows()
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open ledger for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{e.Date.String(), e.Category, e.Amount.Decimal()}); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush record: %w", err)
	}

	row := existing + 1
	slog.InfoContext(ctx, "Expense appended to ledger",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpAppend,
		applog.FieldLedgerPath, s.path,
		applog.FieldRow, row,
		applog.FieldDate, e.Date.String(),
		applog.FieldCategory, e.Category,
		applog.FieldAmountCents, e.Amount.Cents)
	return "row:" + strconv.Itoa(row), nil
}

// ListAll loads every record in file order. A missing or empty file is an
// empty dataset. Rows with unparseable dates are skipped; unparseable
// amounts load as zero so a hand-edited file never blocks the UI.
func (s *Store) ListAll(ctx context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readAll()
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) readAll() ([]core.Expense, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var items []core.Expense
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if len(row) < 3 {
			slog.Warn("Skipping short ledger row", applog.FieldLedgerPath, s.path, applog.FieldRow, i+1)
			continue
		}
		date, err := core.ParseDate(row[0])
		if err != nil {
			slog.Warn("Skipping ledger row with bad date", applog.FieldLedgerPath, s.path, applog.FieldRow, i+1, applog.FieldDate, row[0])
			continue
		}
		items = append(items, core.Expense{
			Date:     date,
			Category: row[1],
			Amount:   core.Money{Cents: core.ParseCentsLenient(row[2])},
		})
	}
	return items, nil
}

// countDataRows counts the data rows physically present in the file,
// header excluded. Rows that would not parse still count, so row
// references keep matching file positions in a hand-edited ledger.
func (s *Store) countDataRows() (int, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read ledger: %w", err)
	}

	n := 0
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		n++
	}
	return n, nil
}

// ensureFile creates the ledger with its header when missing.
func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat ledger: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	return w.Error()
}

func isHeader(row []string) bool {
	return len(row) >= 3 && row[0] == header[0] && row[1] == header[1] && row[2] == header[2]
}
