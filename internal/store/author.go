package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bookshelf-api/internal/domain"
)

// AuthorStore defines the interface for author data persistence.
type AuthorStore interface {
	// Find returns authors whose name contains q.Name, ordered by name.
	Find(ctx context.Context, q domain.AuthorQuery) ([]*domain.Author, error)

	// Get retrieves an author by id.
	// Returns ErrAuthorNotFound if the author does not exist.
	Get(ctx context.Context, id int64) (*domain.Author, error)

	// Create assigns the next author id, stamps the audit fields and persists the author.
	Create(ctx context.Context, actorID int64, author *domain.Author) (int64, error)

	// Update merges name and dob into the existing author and stamps updated/updatedBy.
	// It reports whether an author matched.
	Update(ctx context.Context, actorID int64, author *domain.Author) (bool, error)

	// Remove deletes every author in ids. Referencing books are not checked here.
	Remove(ctx context.Context, ids []int64) error

	// RemoveAll deletes every author.
	RemoveAll(ctx context.Context) error

	// WithTx returns a new AuthorStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AuthorStore
}
