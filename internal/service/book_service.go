package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

// BookService provides book operations on behalf of an authenticated principal.
type BookService interface {
	// Find lists books matching q, sorted by title.
	Find(ctx context.Context, q domain.BookQuery) ([]*domain.Book, error)

	// Get returns one book. Returns store.ErrBookNotFound when absent.
	Get(ctx context.Context, id int64) (*domain.Book, error)

	// Create persists book as created by actor and returns only the new id.
	Create(ctx context.Context, actor domain.Principal, book *domain.Book) (int64, error)

	// Update merges book into the stored record and reports whether one matched.
	Update(ctx context.Context, actor domain.Principal, book *domain.Book) (bool, error)

	// Remove deletes every book in ids. Unknown ids are ignored.
	Remove(ctx context.Context, ids []int64) error
}

type bookServiceImpl struct {
	bookStore store.BookStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewBookService creates a new BookService
func NewBookService(bookStore store.BookStore, db *sql.DB, logger *slog.Logger) BookService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bookServiceImpl{
		bookStore: bookStore,
		db:        db,
		logger:    logger.With("component", "book_service"),
	}
}

func (s *bookServiceImpl) Find(ctx context.Context, q domain.BookQuery) ([]*domain.Book, error) {
	books, err := s.bookStore.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to find books: %w", err)
	}
	return books, nil
}

func (s *bookServiceImpl) Get(ctx context.Context, id int64) (*domain.Book, error) {
	book, err := s.bookStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return book, nil
}

func (s *bookServiceImpl) Create(ctx context.Context, actor domain.Principal, book *domain.Book) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Only client fields survive; the store assigns id and audit stamps.
	record := &domain.Book{Title: book.Title, ISBN: book.ISBN, Authors: book.Authors}
	if record.Authors == nil {
		record.Authors = []int64{}
	}

	var id int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		id, err = s.bookStore.WithTx(tx).Create(ctx, actor.ID, record)
		return err
	})
	if err != nil {
		log.Error("failed to create book",
			"error", err,
			"user_id", actor.ID)
		return 0, fmt.Errorf("failed to create book: %w", err)
	}

	log.Info("book created", "book_id", id, "user_id", actor.ID)
	return id, nil
}

func (s *bookServiceImpl) Update(ctx context.Context, actor domain.Principal, book *domain.Book) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var ok bool
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		ok, err = s.bookStore.WithTx(tx).Update(ctx, actor.ID, book)
		return err
	})
	if err != nil {
		log.Error("failed to update book",
			"error", err,
			"book_id", book.ID,
			"user_id", actor.ID)
		return false, fmt.Errorf("failed to update book %d: %w", book.ID, err)
	}
	if !ok {
		log.Debug("book update matched nothing", "book_id", book.ID)
	}
	return ok, nil
}

func (s *bookServiceImpl) Remove(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.bookStore.Remove(ctx, ids); err != nil {
		return fmt.Errorf("failed to remove books: %w", err)
	}
	return nil
}
