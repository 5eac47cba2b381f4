package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/mocks"
	"github.com/phrazzld/bookshelf-api/internal/service"
	"github.com/phrazzld/bookshelf-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookService_Create(t *testing.T) {
	t.Parallel()

	t.Run("stamps the actor and drops client audit fields", func(t *testing.T) {
		t.Parallel()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		var stored *domain.Book
		var storedActor int64
		bookStore := &mocks.MockBookStore{
			CreateFn: func(_ context.Context, actorID int64, book *domain.Book) (int64, error) {
				stored, storedActor = book, actorID
				return 42, nil
			},
		}
		svc := service.NewBookService(bookStore, db, discardLogger())

		id, err := svc.Create(context.Background(), testActor, &domain.Book{
			ID:        99,
			Title:     "My Title",
			ISBN:      strPtr("88888"),
			Created:   time.Unix(0, 0),
			CreatedBy: 77,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(42), id)
		assert.Equal(t, testActor.ID, storedActor)
		assert.Equal(t, int64(0), stored.ID)
		assert.Equal(t, int64(0), stored.CreatedBy)
		assert.True(t, stored.Created.IsZero())
		assert.Equal(t, "My Title", stored.Title)
		assert.Equal(t, "88888", *stored.ISBN)
		assert.Equal(t, []int64{}, stored.Authors)
		assert.Equal(t, 1, bookStore.WithTxCalls)
	})

	t.Run("store failure rolls back", func(t *testing.T) {
		t.Parallel()
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		bookStore := &mocks.MockBookStore{
			CreateFn: func(context.Context, int64, *domain.Book) (int64, error) {
				return 0, store.ErrSequenceNotFound
			},
		}
		svc := service.NewBookService(bookStore, db, discardLogger())

		_, err := svc.Create(context.Background(), testActor, &domain.Book{Title: "t"})
		assert.ErrorIs(t, err, store.ErrSequenceNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestBookService_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		storeOK  bool
		storeErr error
	}{
		{name: "matched", storeOK: true},
		{name: "no match", storeOK: false},
		{name: "store error", storeErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db, sqlMock := newMockDB(t)
			sqlMock.ExpectBegin()
			if tt.storeErr != nil {
				sqlMock.ExpectRollback()
			} else {
				sqlMock.ExpectCommit()
			}

			var gotActor int64
			bookStore := &mocks.MockBookStore{
				UpdateFn: func(_ context.Context, actorID int64, _ *domain.Book) (bool, error) {
					gotActor = actorID
					return tt.storeOK, tt.storeErr
				},
			}
			svc := service.NewBookService(bookStore, db, discardLogger())

			ok, err := svc.Update(context.Background(), testActor, &domain.Book{ID: 5, Title: "New"})
			if tt.storeErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "boom")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.storeOK, ok)
			assert.Equal(t, testActor.ID, gotActor)
		})
	}
}

func TestBookService_Remove(t *testing.T) {
	t.Parallel()

	t.Run("empty ids is a no-op", func(t *testing.T) {
		t.Parallel()
		called := false
		bookStore := &mocks.MockBookStore{
			RemoveFn: func(context.Context, []int64) error {
				called = true
				return nil
			},
		}
		svc := service.NewBookService(bookStore, nil, discardLogger())

		require.NoError(t, svc.Remove(context.Background(), nil))
		assert.False(t, called)
	})

	t.Run("passes ids through", func(t *testing.T) {
		t.Parallel()
		var got []int64
		bookStore := &mocks.MockBookStore{
			RemoveFn: func(_ context.Context, ids []int64) error {
				got = ids
				return nil
			},
		}
		svc := service.NewBookService(bookStore, nil, discardLogger())

		require.NoError(t, svc.Remove(context.Background(), []int64{1, 2}))
		assert.Equal(t, []int64{1, 2}, got)
	})
}

func TestBookService_Get(t *testing.T) {
	t.Parallel()

	svc := service.NewBookService(&mocks.MockBookStore{}, nil, discardLogger())

	_, err := svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, store.ErrBookNotFound)
}

func TestBookService_Find(t *testing.T) {
	t.Parallel()

	var gotQuery domain.BookQuery
	bookStore := &mocks.MockBookStore{
		FindFn: func(_ context.Context, q domain.BookQuery) ([]*domain.Book, error) {
			gotQuery = q
			return []*domain.Book{{ID: 1, Title: "A"}}, nil
		},
	}
	svc := service.NewBookService(bookStore, nil, discardLogger())

	books, err := svc.Find(context.Background(), domain.BookQuery{Title: "A", Authors: []int64{4}})
	require.NoError(t, err)
	assert.Len(t, books, 1)
	assert.Equal(t, []int64{4}, gotQuery.Authors)
}
