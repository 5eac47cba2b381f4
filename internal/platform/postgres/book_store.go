package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

// Authors are aggregated in position order so the list reads back as it was written.
const bookSelect = `
	SELECT b.id, b.title, b.isbn,
		COALESCE((SELECT json_agg(ba.author_id ORDER BY ba.position)::text
			FROM book_authors ba WHERE ba.book_id = b.id), '[]'),
		b.created, b.updated, b.created_by, b.updated_by
	FROM books b`

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db        store.DBTX
	sequences store.SequenceStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the BookStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBookStore{
		db:        db,
		sequences: NewPostgresSequenceStore(db, logger),
		logger:    logger.With(slog.String("component", "book_store")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// Find implements store.BookStore.Find.
func (s *PostgresBookStore) Find(ctx context.Context, q domain.BookQuery) ([]*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildBookQuery(q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query books", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query books: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	books := make([]*domain.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	log.Debug("found books",
		slog.String("title", q.Title),
		slog.Int("author_filter", len(q.Authors)),
		slog.Int("count", len(books)))
	return books, nil
}

func buildBookQuery(q domain.BookQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Title != "" {
		args = append(args, q.Title)
		conds = append(conds, fmt.Sprintf("strpos(b.title, $%d) > 0", len(args)))
	}
	if len(q.Authors) > 0 {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM book_authors fa WHERE fa.book_id = b.id AND fa.author_id IN (%s))",
			inPlaceholders(len(args)+1, len(q.Authors))))
		args = append(args, int64Args(q.Authors)...)
	}

	var sb strings.Builder
	sb.WriteString(bookSelect)
	if len(conds) > 0 {
		sb.WriteString("\n\tWHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString("\n\tORDER BY b.title, b.id")
	return sb.String(), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var (
		book    domain.Book
		isbn    sql.NullString
		authors string
	)
	err := row.Scan(
		&book.ID,
		&book.Title,
		&isbn,
		&authors,
		&book.Created,
		&book.Updated,
		&book.CreatedBy,
		&book.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if isbn.Valid {
		book.ISBN = &isbn.String
	}
	if err := json.Unmarshal([]byte(authors), &book.Authors); err != nil {
		return nil, fmt.Errorf("failed to decode authors of book %d: %w", book.ID, err)
	}
	if book.Authors == nil {
		book.Authors = []int64{}
	}
	return &book, nil
}

// Get implements store.BookStore.Get.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) Get(ctx context.Context, id int64) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	book, err := scanBook(s.db.QueryRowContext(ctx, bookSelect+"\n\tWHERE b.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.Int64("book_id", id))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book", slog.Int64("book_id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get book: %w", MapError(err))
	}
	return book, nil
}

// Create implements store.BookStore.Create.
// The id comes from the bookId counter on the same connection, so inside a
// transaction a failed insert also gives the id back.
func (s *PostgresBookStore) Create(ctx context.Context, actorID int64, book *domain.Book) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := s.sequences.Next(ctx, domain.BookSequence)
	if err != nil {
		return 0, err
	}

	now := s.now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO books (id, title, isbn, created, updated, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, book.Title, book.ISBN, now, now, actorID, actorID,
	)
	if err != nil {
		log.Error("failed to insert book", slog.Int64("book_id", id), slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to insert book: %w", MapError(err))
	}

	if err := s.insertAuthors(ctx, id, book.Authors); err != nil {
		return 0, err
	}

	book.ID = id
	book.Created, book.Updated = now, now
	book.CreatedBy, book.UpdatedBy = actorID, actorID

	log.Info("book created",
		slog.Int64("book_id", id),
		slog.Int64("created_by", actorID),
		slog.Int("authors", len(book.Authors)))
	return id, nil
}

func (s *PostgresBookStore) insertAuthors(ctx context.Context, bookID int64, authors []int64) error {
	if len(authors) == 0 {
		return nil
	}

	args := make([]any, 0, 1+2*len(authors))
	args = append(args, bookID)
	values := make([]string, len(authors))
	for i, authorID := range authors {
		args = append(args, authorID, i)
		values[i] = fmt.Sprintf("($1, $%d, $%d)", len(args)-1, len(args))
	}

	query := "INSERT INTO book_authors (book_id, author_id, position) VALUES " + strings.Join(values, ", ")
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert authors of book %d: %w", bookID, MapError(err))
	}
	return nil
}

// Update implements store.BookStore.Update.
// A nil ISBN keeps the stored value and an empty one clears it. Likewise nil
// Authors keeps the stored list and an empty, non-nil Authors clears it.
func (s *PostgresBookStore) Update(ctx context.Context, actorID int64, book *domain.Book) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET title = $2,
			isbn = CASE WHEN $3::text IS NULL THEN isbn ELSE NULLIF($3::text, '') END,
			updated = $4, updated_by = $5
		WHERE id = $1`,
		book.ID, book.Title, book.ISBN, s.now(), actorID,
	)
	if err != nil {
		log.Error("failed to update book", slog.Int64("book_id", book.ID), slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to update book: %w", MapError(err))
	}

	ok, err := rowsAffected(result)
	if err != nil || !ok {
		return false, err
	}

	if book.Authors != nil {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM book_authors WHERE book_id = $1`, book.ID); err != nil {
			return false, fmt.Errorf("failed to clear authors of book %d: %w", book.ID, MapError(err))
		}
		if err := s.insertAuthors(ctx, book.ID, book.Authors); err != nil {
			return false, err
		}
	}

	log.Info("book updated", slog.Int64("book_id", book.ID), slog.Int64("updated_by", actorID))
	return true, nil
}

// Remove implements store.BookStore.Remove.
func (s *PostgresBookStore) Remove(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("DELETE FROM books WHERE id IN (%s)", inPlaceholders(1, len(ids)))
	result, err := s.db.ExecContext(ctx, query, int64Args(ids)...)
	if err != nil {
		log.Error("failed to delete books", slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete books: %w", MapError(err))
	}

	n, _ := result.RowsAffected()
	log.Info("books deleted", slog.Int("requested", len(ids)), slog.Int64("deleted", n))
	return nil
}

// RemoveAll implements store.BookStore.RemoveAll.
func (s *PostgresBookStore) RemoveAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("failed to delete all books: %w", MapError(err))
	}
	return nil
}

// WithTx implements store.BookStore.WithTx.
func (s *PostgresBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &PostgresBookStore{
		db:        tx,
		sequences: s.sequences.WithTx(tx),
		logger:    s.logger,
		now:       s.now,
	}
}
