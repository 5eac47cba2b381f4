package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/bookshelf-api/internal/domain"
)

// BookStore defines the interface for book data persistence.
type BookStore interface {
	// Find returns books matching q ordered by title.
	Find(ctx context.Context, q domain.BookQuery) ([]*domain.Book, error)

	// Get retrieves a book by id.
	// Returns ErrBookNotFound if the book does not exist.
	Get(ctx context.Context, id int64) (*domain.Book, error)

	// Create assigns the next book id, stamps created/updated/createdBy/updatedBy
	// with actorID and persists the book. Returns the new id.
	Create(ctx context.Context, actorID int64, book *domain.Book) (int64, error)

	// Update merges title, isbn and authors into the existing book and stamps
	// updated/updatedBy. It reports whether a book matched.
	Update(ctx context.Context, actorID int64, book *domain.Book) (bool, error)

	// Remove deletes every book in ids. Unknown ids are ignored.
	Remove(ctx context.Context, ids []int64) error

	// RemoveAll deletes every book.
	RemoveAll(ctx context.Context) error

	// WithTx returns a new BookStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) BookStore
}
