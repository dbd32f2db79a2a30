package backend

import (
	"context"

	"tally/internal/ledger"
)

// Backend bundles the ledger ports a running application needs.
type Backend interface {
	ledger.ExpenseAppender
	ledger.ExpenseLister
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the backend instance and an optional cleanup function.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds backend creation parameters.
type Config struct {
	Type BackendType

	// File backend
	LedgerPath string
}

// BackendType selects the record store implementation.
type BackendType string

const (
	// FileBackend stores records in the flat CSV ledger file.
	FileBackend BackendType = "file"
	// MemoryBackend keeps records in process memory only.
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer.
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is known.
func (bt BackendType) IsValid() bool {
	switch bt {
	case FileBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
