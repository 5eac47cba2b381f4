package store

import (
	"context"
	"database/sql"
)

// SequenceStore hands out monotonically increasing ids per counter name.
type SequenceStore interface {
	// Next atomically increments the named counter and returns the new value.
	// Concurrent callers never observe the same value.
	// Returns ErrSequenceNotFound if the counter was never provisioned.
	Next(ctx context.Context, name string) (int64, error)

	// WithTx returns a new SequenceStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SequenceStore
}
