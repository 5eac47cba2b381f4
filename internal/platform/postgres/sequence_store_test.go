package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSequenceStore_Next(t *testing.T) {
	t.Parallel()

	t.Run("returns incremented value", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		expectNextSequence(mock, domain.BookSequence, 42)

		id, err := NewPostgresSequenceStore(db, discardLogger()).Next(context.Background(), domain.BookSequence)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("missing counter", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery("UPDATE counters").
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		_, err := NewPostgresSequenceStore(db, discardLogger()).Next(context.Background(), "nope")
		assert.ErrorIs(t, err, store.ErrSequenceNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("database failure", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		dbErr := errors.New("connection reset by peer")
		mock.ExpectQuery("UPDATE counters").WillReturnError(dbErr)

		_, err := NewPostgresSequenceStore(db, discardLogger()).Next(context.Background(), domain.UserSequence)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPostgresSequenceStore_WithTx(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	expectNextSequence(mock, domain.AuthorSequence, 1)
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	id, err := NewPostgresSequenceStore(db, nil).WithTx(tx).Next(context.Background(), domain.AuthorSequence)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.NoError(t, tx.Commit())
}

func TestNewPostgresSequenceStorePanicsOnNilDB(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewPostgresSequenceStore(nil, nil) })
}
