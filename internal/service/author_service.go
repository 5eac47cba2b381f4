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

// AuthorService provides author operations on behalf of an authenticated principal.
type AuthorService interface {
	// Find lists authors matching q, sorted by name.
	Find(ctx context.Context, q domain.AuthorQuery) ([]*domain.Author, error)

	// Get returns one author. Returns store.ErrAuthorNotFound when absent.
	Get(ctx context.Context, id int64) (*domain.Author, error)

	// Create persists author as created by actor and returns only the new id.
	Create(ctx context.Context, actor domain.Principal, author *domain.Author) (int64, error)

	// Update overwrites name and dob and reports whether a record matched.
	Update(ctx context.Context, actor domain.Principal, author *domain.Author) (bool, error)

	// Remove deletes every author in ids. Callers check book references first.
	Remove(ctx context.Context, ids []int64) error
}

type authorServiceImpl struct {
	authorStore store.AuthorStore
	db          *sql.DB
	logger      *slog.Logger
}

// NewAuthorService creates a new AuthorService
func NewAuthorService(authorStore store.AuthorStore, db *sql.DB, logger *slog.Logger) AuthorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authorServiceImpl{
		authorStore: authorStore,
		db:          db,
		logger:      logger.With("component", "author_service"),
	}
}

func (s *authorServiceImpl) Find(ctx context.Context, q domain.AuthorQuery) ([]*domain.Author, error) {
	authors, err := s.authorStore.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to find authors: %w", err)
	}
	return authors, nil
}

func (s *authorServiceImpl) Get(ctx context.Context, id int64) (*domain.Author, error) {
	author, err := s.authorStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get author %d: %w", id, err)
	}
	return author, nil
}

func (s *authorServiceImpl) Create(
	ctx context.Context,
	actor domain.Principal,
	author *domain.Author,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record := &domain.Author{Name: author.Name, DOB: author.DOB}

	var id int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		id, err = s.authorStore.WithTx(tx).Create(ctx, actor.ID, record)
		return err
	})
	if err != nil {
		log.Error("failed to create author",
			"error", err,
			"user_id", actor.ID)
		return 0, fmt.Errorf("failed to create author: %w", err)
	}

	log.Info("author created", "author_id", id, "user_id", actor.ID)
	return id, nil
}

func (s *authorServiceImpl) Update(
	ctx context.Context,
	actor domain.Principal,
	author *domain.Author,
) (bool, error) {
	ok, err := s.authorStore.Update(ctx, actor.ID, author)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update author",
			"error", err,
			"author_id", author.ID,
			"user_id", actor.ID)
		return false, fmt.Errorf("failed to update author %d: %w", author.ID, err)
	}
	return ok, nil
}

func (s *authorServiceImpl) Remove(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.authorStore.Remove(ctx, ids); err != nil {
		return fmt.Errorf("failed to remove authors: %w", err)
	}
	return nil
}
