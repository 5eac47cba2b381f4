package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

// MockBookStore implements store.BookStore for testing.
// Unset function fields return zero values.
type MockBookStore struct {
	FindFn      func(ctx context.Context, q domain.BookQuery) ([]*domain.Book, error)
	GetFn       func(ctx context.Context, id int64) (*domain.Book, error)
	CreateFn    func(ctx context.Context, actorID int64, book *domain.Book) (int64, error)
	UpdateFn    func(ctx context.Context, actorID int64, book *domain.Book) (bool, error)
	RemoveFn    func(ctx context.Context, ids []int64) error
	RemoveAllFn func(ctx context.Context) error

	// WithTxCalls counts how often a transactional copy was requested
	WithTxCalls int
}

var _ store.BookStore = (*MockBookStore)(nil)

// Find implements store.BookStore.
func (m *MockBookStore) Find(ctx context.Context, q domain.BookQuery) ([]*domain.Book, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, q)
	}
	return []*domain.Book{}, nil
}

// Get implements store.BookStore.
func (m *MockBookStore) Get(ctx context.Context, id int64) (*domain.Book, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrBookNotFound
}

// Create implements store.BookStore.
func (m *MockBookStore) Create(ctx context.Context, actorID int64, book *domain.Book) (int64, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actorID, book)
	}
	return 0, nil
}

// Update implements store.BookStore.
func (m *MockBookStore) Update(ctx context.Context, actorID int64, book *domain.Book) (bool, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actorID, book)
	}
	return false, nil
}

// Remove implements store.BookStore.
func (m *MockBookStore) Remove(ctx context.Context, ids []int64) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, ids)
	}
	return nil
}

// RemoveAll implements store.BookStore.
func (m *MockBookStore) RemoveAll(ctx context.Context) error {
	if m.RemoveAllFn != nil {
		return m.RemoveAllFn(ctx)
	}
	return nil
}

// WithTx returns the same mock.
func (m *MockBookStore) WithTx(tx *sql.Tx) store.BookStore {
	m.WithTxCalls++
	return m
}
