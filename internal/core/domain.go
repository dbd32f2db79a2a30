package core

import (
	"errors"
	"strings"
	"time"
)

// CategoryAll is the filter sentinel meaning "no category constraint".
const CategoryAll = "All"

// DateLayout is the wire and storage format for calendar days.
const DateLayout = "2006-01-02"

type (
	// Date is a calendar day, normalized to UTC midnight.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is one logged record. Records are immutable once written and
	// carry no identifier beyond their row position in the ledger.
	Expense struct {
		Date     Date
		Category string
		Amount   Money
	}

	// Filter selects a subsequence of expenses. Zero bounds are not applied.
	// An empty Category (or CategoryAll) matches every record.
	Filter struct {
		From     Date
		To       Date
		Category string
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Category) > 100 {
		return errors.New("category too long (max 100 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

// Matches reports whether the record falls inside the filter's date range
// and category. Bounds are inclusive; category comparison ignores case.
func (f Filter) Matches(e Expense) bool {
	if !f.From.IsZero() && e.Date.Before(f.From.Time) {
		return false
	}
	if !f.To.IsZero() && e.Date.After(f.To.Time) {
		return false
	}
	cat := strings.TrimSpace(f.Category)
	if cat == "" || strings.EqualFold(cat, CategoryAll) {
		return true
	}
	return strings.EqualFold(cat, e.Category)
}

// Apply returns the matching subsequence, preserving input order.
func (f Filter) Apply(items []Expense) []Expense {
	out := make([]Expense, 0, len(items))
	for _, e := range items {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	cat := strings.TrimSpace(f.Category)
	return f.From.IsZero() && f.To.IsZero() && (cat == "" || strings.EqualFold(cat, CategoryAll))
}
