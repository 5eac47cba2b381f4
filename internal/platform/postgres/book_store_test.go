package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookColumns = []string{"id", "title", "isbn", "authors", "created", "updated", "created_by", "updated_by"}

func newTestBookStore(t *testing.T) (*PostgresBookStore, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	s := NewPostgresBookStore(db, discardLogger())
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func strPtr(s string) *string { return &s }

func TestBuildBookQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		q         domain.BookQuery
		wantWhere string
		wantArgs  []any
	}{
		{
			name:     "no filter",
			q:        domain.BookQuery{},
			wantArgs: nil,
		},
		{
			name:      "title only",
			q:         domain.BookQuery{Title: "Ring"},
			wantWhere: "WHERE strpos(b.title, $1) > 0",
			wantArgs:  []any{"Ring"},
		},
		{
			name:      "authors only",
			q:         domain.BookQuery{Authors: []int64{3, 4}},
			wantWhere: "fa.author_id IN ($1, $2)",
			wantArgs:  []any{int64(3), int64(4)},
		},
		{
			name:      "title and authors",
			q:         domain.BookQuery{Title: "Ring", Authors: []int64{9}},
			wantWhere: "WHERE strpos(b.title, $1) > 0 AND EXISTS",
			wantArgs:  []any{"Ring", int64(9)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			query, args := buildBookQuery(tc.q)
			assert.Equal(t, tc.wantArgs, args)
			assert.Contains(t, query, "ORDER BY b.title, b.id")
			if tc.wantWhere == "" {
				assert.NotContains(t, query, "\n\tWHERE ")
				assert.Contains(t, query, "FROM books b\n\tORDER BY")
			} else {
				assert.Contains(t, query, tc.wantWhere)
			}
		})
	}
}

func TestPostgresBookStore_Create(t *testing.T) {
	t.Parallel()
	s, mock := newTestBookStore(t)

	expectNextSequence(mock, domain.BookSequence, 7)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO books")).
		WithArgs(int64(7), "My Title", "88888", fixedNow, fixedNow, int64(2), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO book_authors (book_id, author_id, position) VALUES ($1, $2, $3), ($1, $4, $5)")).
		WithArgs(int64(7), int64(11), 0, int64(12), 1).
		WillReturnResult(sqlmock.NewResult(0, 2))

	book := &domain.Book{Title: "My Title", ISBN: strPtr("88888"), Authors: []int64{11, 12}}
	id, err := s.Create(context.Background(), 2, book)
	require.NoError(t, err)

	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), book.ID)
	assert.Equal(t, book.Created, book.Updated)
	assert.Equal(t, int64(2), book.CreatedBy)
}

func TestPostgresBookStore_CreateLogsOneComponentPerLine(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	var buf bytes.Buffer
	s := NewPostgresBookStore(db, slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	s.now = func() time.Time { return fixedNow }

	mock.ExpectBegin()
	expectNextSequence(mock, domain.BookSequence, 3)
	mock.ExpectExec("INSERT INTO books").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	_, err = s.WithTx(tx).Create(context.Background(), 1, &domain.Book{Title: "Logged", Authors: []int64{}})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	components := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, 1, strings.Count(line, `"component"`), line)
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		components[entry["component"].(string)] = true
	}
	assert.True(t, components["sequence_store"])
	assert.True(t, components["book_store"])
}

func TestPostgresBookStore_CreateWithoutAuthors(t *testing.T) {
	t.Parallel()
	s, mock := newTestBookStore(t)

	expectNextSequence(mock, domain.BookSequence, 1)
	mock.ExpectExec("INSERT INTO books").
		WithArgs(int64(1), "Untitled", nil, fixedNow, fixedNow, int64(1), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Create(context.Background(), 1, &domain.Book{Title: "Untitled", Authors: []int64{}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestPostgresBookStore_CreateSequenceMissing(t *testing.T) {
	t.Parallel()
	s, mock := newTestBookStore(t)

	mock.ExpectQuery("UPDATE counters").WillReturnRows(sqlmock.NewRows([]string{"seq"}))

	_, err := s.Create(context.Background(), 1, &domain.Book{Title: "x"})
	assert.ErrorIs(t, err, store.ErrSequenceNotFound)
}

func TestPostgresBookStore_Get(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		s, mock := newTestBookStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE b.id = $1")).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(bookColumns).
				AddRow(int64(5), "Dune", "0441013597", "[3, 1]", fixedNow, fixedNow, int64(1), int64(2)))

		book, err := s.Get(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "Dune", book.Title)
		require.NotNil(t, book.ISBN)
		assert.Equal(t, "0441013597", *book.ISBN)
		assert.Equal(t, []int64{3, 1}, book.Authors)
		assert.Equal(t, int64(2), book.UpdatedBy)
	})

	t.Run("null isbn and no authors", func(t *testing.T) {
		t.Parallel()
		s, mock := newTestBookStore(t)
		mock.ExpectQuery("FROM books b").
			WithArgs(int64(6)).
			WillReturnRows(sqlmock.NewRows(bookColumns).
				AddRow(int64(6), "Emma", nil, "[]", fixedNow, fixedNow, int64(1), int64(1)))

		book, err := s.Get(context.Background(), 6)
		require.NoError(t, err)
		assert.Nil(t, book.ISBN)
		assert.NotNil(t, book.Authors)
		assert.Empty(t, book.Authors)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		s, mock := newTestBookStore(t)
		mock.ExpectQuery("FROM books b").WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(bookColumns))

		_, err := s.Get(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrBookNotFound)
	})
}

func TestPostgresBookStore_Find(t *testing.T) {
	t.Parallel()
	s, mock := newTestBookStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("fa.author_id IN ($1)")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(bookColumns).
			AddRow(int64(1), "A Tale", nil, "[4]", fixedNow, fixedNow, int64(1), int64(1)).
			AddRow(int64(2), "B Tale", nil, "[5, 4]", fixedNow, fixedNow, int64(1), int64(1)))

	books, err := s.Find(context.Background(), domain.BookQuery{Authors: []int64{4}})
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "A Tale", books[0].Title)
	assert.Equal(t, []int64{5, 4}, books[1].Authors)
}

func TestPostgresBookStore_FindEmpty(t *testing.T) {
	t.Parallel()
	s, mock := newTestBookStore(t)
	mock.ExpectQuery("FROM books b").WithArgs("zzz").WillReturnRows(sqlmock.NewRows(bookColumns))

	books, err := s.Find(context.Background(), domain.BookQuery{Title: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestPostgresBookStore_Update(t *testing.T) {
	t.Parallel()

	t.Run("replaces authors when given", func(t *testing.T) {
		t.Parallel()
		s, mock := newTestBookStore(t)
		mock.ExpectExec(regexp.QuoteMeta("isbn = CASE WHEN $3::text IS NULL THEN isbn ELSE NULLIF($3::text, '') END")).
			WithArgs(int64(3), "New Title", nil, fixedNow, int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM book_authors WHERE book_id = $1")).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("INSERT INTO book_authors").
			WithArgs(int64(3), int64(1), 0).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := s.Update(context.Background(), 8, &domain.Book{ID: 3, Title: "New Title", Authors: []int64{1}})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("keeps authors when nil", func(t *testing.T) {
		t.Parallel()
		s, mock := newTestBookStore(t)
		mock.ExpectExec("UPDATE books").
			WithArgs(int64(3), "New Title", "123", fixedNow, int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := s.Update(context.Background(), 8, &domain.Book{ID: 3, Title: "New Title", ISBN: strPtr("123")})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty isbn is sent for clearing", func(t *testing.T) {
		t.Parallel()
		s, mock := newTestBookStore(t)
		mock.ExpectExec(regexp.QuoteMeta("NULLIF($3::text, '')")).
			WithArgs(int64(3), "New Title", "", fixedNow, int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := s.Update(context.Background(), 8, &domain.Book{ID: 3, Title: "New Title", ISBN: strPtr("")})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no matching book", func(t *testing.T) {
		t.Parallel()
		s, mock := newTestBookStore(t)
		mock.ExpectExec("UPDATE books").WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := s.Update(context.Background(), 8, &domain.Book{ID: 404, Title: "x", Authors: []int64{1}})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("database failure", func(t *testing.T) {
		t.Parallel()
		s, mock := newTestBookStore(t)
		mock.ExpectExec("UPDATE books").WillReturnError(errors.New("boom"))

		_, err := s.Update(context.Background(), 8, &domain.Book{ID: 1, Title: "x"})
		assert.Error(t, err)
	})
}

func TestPostgresBookStore_Remove(t *testing.T) {
	t.Parallel()

	t.Run("empty ids is a no-op", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestBookStore(t)
		assert.NoError(t, s.Remove(context.Background(), nil))
	})

	t.Run("deletes listed ids", func(t *testing.T) {
		t.Parallel()
		s, mock := newTestBookStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books WHERE id IN ($1, $2, $3)")).
			WithArgs(int64(1), int64(2), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		assert.NoError(t, s.Remove(context.Background(), []int64{1, 2, 3}))
	})

	t.Run("remove all", func(t *testing.T) {
		t.Parallel()
		s, mock := newTestBookStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books")).WillReturnResult(sqlmock.NewResult(0, 10))

		assert.NoError(t, s.RemoveAll(context.Background()))
	})
}
