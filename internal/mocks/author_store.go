package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

// MockAuthorStore implements store.AuthorStore for testing.
// Unset function fields return zero values.
type MockAuthorStore struct {
	FindFn      func(ctx context.Context, q domain.AuthorQuery) ([]*domain.Author, error)
	GetFn       func(ctx context.Context, id int64) (*domain.Author, error)
	CreateFn    func(ctx context.Context, actorID int64, author *domain.Author) (int64, error)
	UpdateFn    func(ctx context.Context, actorID int64, author *domain.Author) (bool, error)
	RemoveFn    func(ctx context.Context, ids []int64) error
	RemoveAllFn func(ctx context.Context) error

	// WithTxCalls counts how often a transactional copy was requested
	WithTxCalls int
}

var _ store.AuthorStore = (*MockAuthorStore)(nil)

// Find implements store.AuthorStore.
func (m *MockAuthorStore) Find(ctx context.Context, q domain.AuthorQuery) ([]*domain.Author, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, q)
	}
	return []*domain.Author{}, nil
}

// Get implements store.AuthorStore.
func (m *MockAuthorStore) Get(ctx context.Context, id int64) (*domain.Author, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrAuthorNotFound
}

// Create implements store.AuthorStore.
func (m *MockAuthorStore) Create(ctx context.Context, actorID int64, author *domain.Author) (int64, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actorID, author)
	}
	return 0, nil
}

// Update implements store.AuthorStore.
func (m *MockAuthorStore) Update(ctx context.Context, actorID int64, author *domain.Author) (bool, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actorID, author)
	}
	return false, nil
}

// Remove implements store.AuthorStore.
func (m *MockAuthorStore) Remove(ctx context.Context, ids []int64) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, ids)
	}
	return nil
}

// RemoveAll implements store.AuthorStore.
func (m *MockAuthorStore) RemoveAll(ctx context.Context) error {
	if m.RemoveAllFn != nil {
		return m.RemoveAllFn(ctx)
	}
	return nil
}

// WithTx returns the same mock.
func (m *MockAuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	m.WithTxCalls++
	return m
}
