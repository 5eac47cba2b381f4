package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserStore is a mock of store.UserStore interface for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

// Get is a mock implementation of store.UserStore.Get
func (m *TestifyMockUserStore) Get(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUserName is a mock implementation of store.UserStore.FindByUserName
func (m *TestifyMockUserStore) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	args := m.Called(ctx, userName)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of store.UserStore.Create
func (m *TestifyMockUserStore) Create(ctx context.Context, actorID int64, user *domain.User) (int64, error) {
	args := m.Called(ctx, actorID, user)
	return args.Get(0).(int64), args.Error(1)
}

// UpdatePassword is a mock implementation of store.UserStore.UpdatePassword
func (m *TestifyMockUserStore) UpdatePassword(
	ctx context.Context,
	actorID, userID int64,
	hashedPassword string,
) (bool, error) {
	args := m.Called(ctx, actorID, userID, hashedPassword)
	return args.Bool(0), args.Error(1)
}

// Count is a mock implementation of store.UserStore.Count
func (m *TestifyMockUserStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Remove is a mock implementation of store.UserStore.Remove
func (m *TestifyMockUserStore) Remove(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// RemoveAll is a mock implementation of store.UserStore.RemoveAll
func (m *TestifyMockUserStore) RemoveAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// WithTx returns the mock itself so expectations carry into transactions.
func (m *TestifyMockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
