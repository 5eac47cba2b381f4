package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bookshelf-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Stored users carry HashedPassword; callers hash before Create and UpdatePassword.
type UserStore interface {
	// Get retrieves a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// FindByUserName looks a user up by exact, case-sensitive user name.
	// Returns ErrUserNotFound if no user has that name.
	FindByUserName(ctx context.Context, userName string) (*domain.User, error)

	// Create assigns the next user id, stamps the audit fields and persists the user.
	// Returns ErrUserNameExists if the user name is taken.
	Create(ctx context.Context, actorID int64, user *domain.User) (int64, error)

	// UpdatePassword replaces the stored hash and stamps updated/updatedBy.
	// It reports whether a user matched.
	UpdatePassword(ctx context.Context, actorID, userID int64, hashedPassword string) (bool, error)

	// Count returns the number of registered users.
	Count(ctx context.Context) (int64, error)

	// Remove deletes every user in ids.
	Remove(ctx context.Context, ids []int64) error

	// RemoveAll deletes every user.
	RemoveAll(ctx context.Context) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
