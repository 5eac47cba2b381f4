package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
// Without function fields it behaves as an in-memory store keyed by user name.
type MockUserStore struct {
	// Function fields for customizable behavior
	GetFn            func(ctx context.Context, id int64) (*domain.User, error)
	FindByUserNameFn func(ctx context.Context, userName string) (*domain.User, error)
	CreateFn         func(ctx context.Context, actorID int64, user *domain.User) (int64, error)
	UpdatePasswordFn func(ctx context.Context, actorID, userID int64, hashedPassword string) (bool, error)
	CountFn          func(ctx context.Context) (int64, error)

	// Data for default implementation
	mu         sync.Mutex
	Users      map[string]*domain.User
	LastUserID int64
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore(users ...*domain.User) *MockUserStore {
	m := &MockUserStore{Users: make(map[string]*domain.User)}
	for _, u := range users {
		m.Users[u.UserName] = u
		if u.ID > m.LastUserID {
			m.LastUserID = u.ID
		}
	}
	return m
}

var _ store.UserStore = (*MockUserStore)(nil)

// Get implements the UserStore interface
func (m *MockUserStore) Get(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.ID == id {
			c := *user
			return &c, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// FindByUserName implements the UserStore interface
func (m *MockUserStore) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	if m.FindByUserNameFn != nil {
		return m.FindByUserNameFn(ctx, userName)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[userName]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	c := *user
	return &c, nil
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, actorID int64, user *domain.User) (int64, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actorID, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Users[user.UserName]; exists {
		return 0, store.ErrUserNameExists
	}
	m.LastUserID++
	user.ID = m.LastUserID
	user.CreatedBy, user.UpdatedBy = actorID, actorID
	c := *user
	m.Users[user.UserName] = &c
	return user.ID, nil
}

// UpdatePassword implements the UserStore interface
func (m *MockUserStore) UpdatePassword(ctx context.Context, actorID, userID int64, hashedPassword string) (bool, error) {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, actorID, userID, hashedPassword)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.ID == userID {
			user.HashedPassword = hashedPassword
			user.UpdatedBy = actorID
			return true, nil
		}
	}
	return false, nil
}

// Count implements the UserStore interface
func (m *MockUserStore) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Users)), nil
}

// Remove implements the UserStore interface
func (m *MockUserStore) Remove(ctx context.Context, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		for name, user := range m.Users {
			if user.ID == id {
				delete(m.Users, name)
			}
		}
	}
	return nil
}

// RemoveAll implements the UserStore interface
func (m *MockUserStore) RemoveAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users = make(map[string]*domain.User)
	return nil
}

// WithTx implements the UserStore interface for transaction support
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
