package mocks

import (
	"context"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/service"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

// MockBookService implements service.BookService for handler tests.
// Calls records the name of every method invoked, in order.
type MockBookService struct {
	FindFn   func(ctx context.Context, q domain.BookQuery) ([]*domain.Book, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Book, error)
	CreateFn func(ctx context.Context, actor domain.Principal, book *domain.Book) (int64, error)
	UpdateFn func(ctx context.Context, actor domain.Principal, book *domain.Book) (bool, error)
	RemoveFn func(ctx context.Context, ids []int64) error

	Calls []string
}

var _ service.BookService = (*MockBookService)(nil)

func (m *MockBookService) Find(ctx context.Context, q domain.BookQuery) ([]*domain.Book, error) {
	m.Calls = append(m.Calls, "Find")
	if m.FindFn != nil {
		return m.FindFn(ctx, q)
	}
	return []*domain.Book{}, nil
}

func (m *MockBookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	m.Calls = append(m.Calls, "Get")
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrBookNotFound
}

func (m *MockBookService) Create(ctx context.Context, actor domain.Principal, book *domain.Book) (int64, error) {
	m.Calls = append(m.Calls, "Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actor, book)
	}
	return 0, nil
}

func (m *MockBookService) Update(ctx context.Context, actor domain.Principal, book *domain.Book) (bool, error) {
	m.Calls = append(m.Calls, "Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actor, book)
	}
	return false, nil
}

func (m *MockBookService) Remove(ctx context.Context, ids []int64) error {
	m.Calls = append(m.Calls, "Remove")
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, ids)
	}
	return nil
}

// MockAuthorService implements service.AuthorService for handler tests.
type MockAuthorService struct {
	FindFn   func(ctx context.Context, q domain.AuthorQuery) ([]*domain.Author, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Author, error)
	CreateFn func(ctx context.Context, actor domain.Principal, author *domain.Author) (int64, error)
	UpdateFn func(ctx context.Context, actor domain.Principal, author *domain.Author) (bool, error)
	RemoveFn func(ctx context.Context, ids []int64) error

	Calls []string
}

var _ service.AuthorService = (*MockAuthorService)(nil)

func (m *MockAuthorService) Find(ctx context.Context, q domain.AuthorQuery) ([]*domain.Author, error) {
	m.Calls = append(m.Calls, "Find")
	if m.FindFn != nil {
		return m.FindFn(ctx, q)
	}
	return []*domain.Author{}, nil
}

func (m *MockAuthorService) Get(ctx context.Context, id int64) (*domain.Author, error) {
	m.Calls = append(m.Calls, "Get")
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrAuthorNotFound
}

func (m *MockAuthorService) Create(ctx context.Context, actor domain.Principal, author *domain.Author) (int64, error) {
	m.Calls = append(m.Calls, "Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, actor, author)
	}
	return 0, nil
}

func (m *MockAuthorService) Update(ctx context.Context, actor domain.Principal, author *domain.Author) (bool, error) {
	m.Calls = append(m.Calls, "Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, actor, author)
	}
	return false, nil
}

func (m *MockAuthorService) Remove(ctx context.Context, ids []int64) error {
	m.Calls = append(m.Calls, "Remove")
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, ids)
	}
	return nil
}

// MockUserService implements service.UserService for handler tests.
type MockUserService struct {
	GetUserFn        func(ctx context.Context, userID int64) (*domain.User, error)
	LoginFn          func(ctx context.Context, userName, password string) (*domain.User, error)
	CreateUserFn     func(ctx context.Context, userName, password string) (int64, error)
	ChangePasswordFn func(ctx context.Context, actor domain.Principal, userID int64, oldPassword, newPassword string) error
	EnsureAdminFn    func(ctx context.Context, password string) (bool, error)

	Calls []string
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	m.Calls = append(m.Calls, "GetUser")
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return nil, service.ErrUserNotFound
}

func (m *MockUserService) Login(ctx context.Context, userName, password string) (*domain.User, error) {
	m.Calls = append(m.Calls, "Login")
	if m.LoginFn != nil {
		return m.LoginFn(ctx, userName, password)
	}
	return nil, service.ErrUserNotFound
}

func (m *MockUserService) CreateUser(ctx context.Context, userName, password string) (int64, error) {
	m.Calls = append(m.Calls, "CreateUser")
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, userName, password)
	}
	return 0, nil
}

func (m *MockUserService) ChangePassword(
	ctx context.Context,
	actor domain.Principal,
	userID int64,
	oldPassword, newPassword string,
) error {
	m.Calls = append(m.Calls, "ChangePassword")
	if m.ChangePasswordFn != nil {
		return m.ChangePasswordFn(ctx, actor, userID, oldPassword, newPassword)
	}
	return nil
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	m.Calls = append(m.Calls, "EnsureAdmin")
	if m.EnsureAdminFn != nil {
		return m.EnsureAdminFn(ctx, password)
	}
	return false, nil
}
