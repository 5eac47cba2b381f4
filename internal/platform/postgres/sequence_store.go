package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

// The row lock taken by UPDATE serializes concurrent callers on the same counter.
const nextSequenceQuery = `UPDATE counters SET seq = seq + 1 WHERE name = $1 RETURNING seq`

// PostgresSequenceStore implements store.SequenceStore on the counters table.
type PostgresSequenceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSequenceStore creates a sequence store over db.
func NewPostgresSequenceStore(db store.DBTX, logger *slog.Logger) *PostgresSequenceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSequenceStore{
		db:     db,
		logger: logger.With(slog.String("component", "sequence_store")),
	}
}

var _ store.SequenceStore = (*PostgresSequenceStore)(nil)

// Next implements store.SequenceStore.Next.
func (s *PostgresSequenceStore) Next(ctx context.Context, name string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var seq int64
	err := s.db.QueryRowContext(ctx, nextSequenceQuery, name).Scan(&seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Error("sequence counter missing", slog.String("sequence", name))
			return 0, fmt.Errorf("%w: %s", store.ErrSequenceNotFound, name)
		}
		log.Error("failed to increment sequence",
			slog.String("sequence", name),
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to increment sequence %s: %w", name, MapError(err))
	}

	log.Debug("issued sequence id", slog.String("sequence", name), slog.Int64("id", seq))
	return seq, nil
}

// WithTx implements store.SequenceStore.WithTx.
func (s *PostgresSequenceStore) WithTx(tx *sql.Tx) store.SequenceStore {
	return &PostgresSequenceStore{db: tx, logger: s.logger}
}
