package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

const authorSelect = `
	SELECT id, name, dob, created, updated, created_by, updated_by
	FROM authors`

// PostgresAuthorStore implements the store.AuthorStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAuthorStore struct {
	db        store.DBTX
	sequences store.SequenceStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewPostgresAuthorStore creates a new PostgreSQL implementation of the AuthorStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAuthorStore(db store.DBTX, logger *slog.Logger) *PostgresAuthorStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAuthorStore{
		db:        db,
		sequences: NewPostgresSequenceStore(db, logger),
		logger:    logger.With(slog.String("component", "author_store")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var _ store.AuthorStore = (*PostgresAuthorStore)(nil)

func scanAuthor(row rowScanner) (*domain.Author, error) {
	var (
		author domain.Author
		dob    time.Time
	)
	err := row.Scan(
		&author.ID,
		&author.Name,
		&dob,
		&author.Created,
		&author.Updated,
		&author.CreatedBy,
		&author.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	author.DOB = domain.NewDate(dob)
	return &author, nil
}

// Find implements store.AuthorStore.Find.
func (s *PostgresAuthorStore) Find(ctx context.Context, q domain.AuthorQuery) ([]*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := authorSelect
	var args []any
	if q.Name != "" {
		query += "\n\tWHERE strpos(name, $1) > 0"
		args = append(args, q.Name)
	}
	query += "\n\tORDER BY name, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query authors", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query authors: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	authors := make([]*domain.Author, 0)
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return authors, nil
}

// Get implements store.AuthorStore.Get.
// Returns store.ErrAuthorNotFound if the author does not exist.
func (s *PostgresAuthorStore) Get(ctx context.Context, id int64) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	author, err := scanAuthor(s.db.QueryRowContext(ctx, authorSelect+"\n\tWHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("author not found", slog.Int64("author_id", id))
			return nil, store.ErrAuthorNotFound
		}
		log.Error("failed to get author", slog.Int64("author_id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get author: %w", MapError(err))
	}
	return author, nil
}

// Create implements store.AuthorStore.Create.
func (s *PostgresAuthorStore) Create(ctx context.Context, actorID int64, author *domain.Author) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := s.sequences.Next(ctx, domain.AuthorSequence)
	if err != nil {
		return 0, err
	}

	now := s.now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO authors (id, name, dob, created, updated, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, author.Name, author.DOB.Time, now, now, actorID, actorID,
	)
	if err != nil {
		log.Error("failed to insert author", slog.Int64("author_id", id), slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to insert author: %w", MapError(err))
	}

	author.ID = id
	author.Created, author.Updated = now, now
	author.CreatedBy, author.UpdatedBy = actorID, actorID

	log.Info("author created", slog.Int64("author_id", id), slog.Int64("created_by", actorID))
	return id, nil
}

// Update implements store.AuthorStore.Update.
func (s *PostgresAuthorStore) Update(ctx context.Context, actorID int64, author *domain.Author) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE authors
		SET name = $2, dob = $3, updated = $4, updated_by = $5
		WHERE id = $1`,
		author.ID, author.Name, author.DOB.Time, s.now(), actorID,
	)
	if err != nil {
		log.Error("failed to update author", slog.Int64("author_id", author.ID), slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to update author: %w", MapError(err))
	}

	ok, err := rowsAffected(result)
	if err != nil {
		return false, err
	}
	if ok {
		log.Info("author updated", slog.Int64("author_id", author.ID), slog.Int64("updated_by", actorID))
	}
	return ok, nil
}

// Remove implements store.AuthorStore.Remove.
func (s *PostgresAuthorStore) Remove(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("DELETE FROM authors WHERE id IN (%s)", inPlaceholders(1, len(ids)))
	result, err := s.db.ExecContext(ctx, query, int64Args(ids)...)
	if err != nil {
		log.Error("failed to delete authors", slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete authors: %w", MapError(err))
	}

	n, _ := result.RowsAffected()
	log.Info("authors deleted", slog.Int("requested", len(ids)), slog.Int64("deleted", n))
	return nil
}

// RemoveAll implements store.AuthorStore.RemoveAll.
func (s *PostgresAuthorStore) RemoveAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM authors`); err != nil {
		return fmt.Errorf("failed to delete all authors: %w", MapError(err))
	}
	return nil
}

// WithTx implements store.AuthorStore.WithTx.
func (s *PostgresAuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return &PostgresAuthorStore{
		db:        tx,
		sequences: s.sequences.WithTx(tx),
		logger:    s.logger,
		now:       s.now,
	}
}
