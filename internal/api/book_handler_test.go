package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/mocks"
	"github.com/phrazzld/bookshelf-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBookHandler(svc *mocks.MockBookService) *BookHandler {
	return NewBookHandler(svc, testResponder(), discardLogger())
}

func TestBookHandler_Find(t *testing.T) {
	t.Parallel()

	var gotQuery domain.BookQuery
	svc := &mocks.MockBookService{
		FindFn: func(_ context.Context, q domain.BookQuery) ([]*domain.Book, error) {
			gotQuery = q
			return []*domain.Book{{ID: 2, Title: "Dune", Authors: []int64{1}}}, nil
		},
	}
	w := httptest.NewRecorder()

	newTestBookHandler(svc).Find(w, newRequest(http.MethodGet, "/books?title=Du", "", "", &testActor))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Du", gotQuery.Title)
	var books []domain.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Equal(t, int64(2), books[0].ID)
}

func TestBookHandler_Get(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockBookService{
			GetFn: func(_ context.Context, id int64) (*domain.Book, error) {
				return &domain.Book{ID: id, Title: "Emma", Authors: []int64{}}, nil
			},
		}
		w := httptest.NewRecorder()
		newTestBookHandler(svc).Get(w, newRequest(http.MethodGet, "/books/9", "", "9", &testActor))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"_id":9`)
		assert.Contains(t, w.Body.String(), `"title":"Emma"`)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		newTestBookHandler(&mocks.MockBookService{}).Get(w, newRequest(http.MethodGet, "/books/9", "", "9", &testActor))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockBookService{}
		w := httptest.NewRecorder()
		newTestBookHandler(svc).Get(w, newRequest(http.MethodGet, "/books/abc", "", "abc", &testActor))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t,
			"Missing or invalid request parameter(s): [id] must be defined and non-empty",
			decodeError(t, w).Message)
		assert.Empty(t, svc.Calls)
	})
}

func TestBookHandler_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantBody    string
		wantMessage string
		wantBook    *domain.Book
	}{
		{
			name:       "title only",
			body:       `{"title":"Dune"}`,
			wantStatus: http.StatusCreated,
			wantBody:   `{"bookId":12}`,
			wantBook:   &domain.Book{Title: "Dune", Authors: []int64{}},
		},
		{
			name:       "isbn and authors in order",
			body:       `{"title":"Dune","isbn":"978-0441013593","authors":[4,1]}`,
			wantStatus: http.StatusCreated,
			wantBody:   `{"bookId":12}`,
			wantBook:   &domain.Book{Title: "Dune", ISBN: strPtr("978-0441013593"), Authors: []int64{4, 1}},
		},
		{
			name:       "client audit fields are ignored",
			body:       `{"title":"Dune","createdBy":99,"_id":5}`,
			wantStatus: http.StatusCreated,
			wantBody:   `{"bookId":12}`,
			wantBook:   &domain.Book{Title: "Dune", Authors: []int64{}},
		},
		{
			name:        "missing title",
			body:        `{"isbn":"123"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing or invalid request parameter(s): [title] must be defined and non-empty",
		},
		{
			name:        "empty body",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing or invalid request parameter(s): [title] must be defined and non-empty",
		},
		{
			name:        "bad author id",
			body:        `{"title":"Dune","authors":["x"]}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing or invalid request parameter(s): [authors] must be defined and non-empty",
		},
		{
			name:        "malformed json",
			body:        `{"title":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgMalformedBody,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var (
				gotActor domain.Principal
				gotBook  *domain.Book
			)
			svc := &mocks.MockBookService{
				CreateFn: func(_ context.Context, actor domain.Principal, book *domain.Book) (int64, error) {
					gotActor, gotBook = actor, book
					return 12, nil
				},
			}
			w := httptest.NewRecorder()
			newTestBookHandler(svc).Create(w, newRequest(http.MethodPost, "/books", tc.body, "", &testActor))

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBook == nil {
				assert.Equal(t, tc.wantMessage, decodeError(t, w).Message)
				assert.Empty(t, svc.Calls, "service must not run after a validation failure")
				return
			}
			assert.JSONEq(t, tc.wantBody, w.Body.String())
			assert.Equal(t, testActor, gotActor)
			assert.Equal(t, tc.wantBook, gotBook)
		})
	}
}

func TestBookHandler_Create_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockBookService{}
	w := httptest.NewRecorder()
	newTestBookHandler(svc).Create(w, newRequest(http.MethodPost, "/books", `{"title":"Dune"}`, "", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.Calls)
}

func TestBookHandler_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		pathID      string
		body        string
		updated     bool
		wantStatus  int
		wantBody    string
		wantMessage string
		wantBook    *domain.Book
	}{
		{
			name:       "updates",
			pathID:     "4",
			body:       `{"id":4,"title":"Dune Messiah"}`,
			updated:    true,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true}`,
			wantBook:   &domain.Book{ID: 4, Title: "Dune Messiah"},
		},
		{
			name:       "replaces authors when given",
			pathID:     "4",
			body:       `{"id":4,"title":"Dune","authors":[]}`,
			updated:    true,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true}`,
			wantBook:   &domain.Book{ID: 4, Title: "Dune", Authors: []int64{}},
		},
		{
			name:       "sets isbn",
			pathID:     "4",
			body:       `{"id":4,"title":"Dune","isbn":"0441013597"}`,
			updated:    true,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true}`,
			wantBook:   &domain.Book{ID: 4, Title: "Dune", ISBN: strPtr("0441013597")},
		},
		{
			name:       "empty isbn is kept so the store clears it",
			pathID:     "4",
			body:       `{"id":4,"title":"Dune","isbn":""}`,
			updated:    true,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true}`,
			wantBook:   &domain.Book{ID: 4, Title: "Dune", ISBN: strPtr("")},
		},
		{
			name:       "no matching book",
			pathID:     "4",
			body:       `{"id":4,"title":"Dune"}`,
			updated:    false,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":false}`,
			wantBook:   &domain.Book{ID: 4, Title: "Dune"},
		},
		{
			name:        "missing id",
			pathID:      "4",
			body:        `{"title":"Dune"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing or invalid request parameter(s): [id] must be defined and non-empty",
		},
		{
			name:        "id disagrees with path",
			pathID:      "5",
			body:        `{"id":4,"title":"Dune"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing or invalid request parameter(s): [id] must be defined and non-empty",
		},
		{
			name:        "id checked before title",
			pathID:      "4",
			body:        `{"id":-1}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing or invalid request parameter(s): [id] must be defined and non-empty",
		},
		{
			name:        "missing title",
			pathID:      "4",
			body:        `{"id":4,"title":""}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Missing or invalid request parameter(s): [title] must be defined and non-empty",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotBook *domain.Book
			svc := &mocks.MockBookService{
				UpdateFn: func(_ context.Context, _ domain.Principal, book *domain.Book) (bool, error) {
					gotBook = book
					return tc.updated, nil
				},
			}
			w := httptest.NewRecorder()
			req := newRequest(http.MethodPut, "/books/"+tc.pathID, tc.body, tc.pathID, &testActor)
			newTestBookHandler(svc).Update(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBook == nil {
				assert.Equal(t, tc.wantMessage, decodeError(t, w).Message)
				assert.Empty(t, svc.Calls)
				return
			}
			assert.JSONEq(t, tc.wantBody, w.Body.String())
			assert.Equal(t, tc.wantBook, gotBook)
		})
	}
}

func TestBookHandler_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantIDs    []int64
		wantCalls  []string
	}{
		{name: "deletes ids", body: `{"ids":[1,0,7]}`, wantStatus: http.StatusOK, wantIDs: []int64{1, 0, 7}, wantCalls: []string{"Remove"}},
		{name: "empty list is a no-op", body: `{"ids":[]}`, wantStatus: http.StatusOK},
		{name: "missing ids is a no-op", body: `{}`, wantStatus: http.StatusOK},
		{name: "negative id", body: `{"ids":[1,-2]}`, wantStatus: http.StatusBadRequest},
		{name: "string id", body: `{"ids":["1"]}`, wantStatus: http.StatusBadRequest},
		{name: "fractional id", body: `{"ids":[1.5]}`, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotIDs []int64
			svc := &mocks.MockBookService{
				RemoveFn: func(_ context.Context, ids []int64) error {
					gotIDs = ids
					return nil
				},
			}
			w := httptest.NewRecorder()
			newTestBookHandler(svc).Delete(w, newRequest(http.MethodDelete, "/books", tc.body, "", &testActor))

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantIDs, gotIDs)
			assert.Equal(t, tc.wantCalls, svc.Calls)
			if tc.wantStatus == http.StatusBadRequest {
				assert.Equal(t,
					"Missing or invalid request parameter(s): [ids] must be defined and non-empty",
					decodeError(t, w).Message)
			}
		})
	}
}

func TestBookHandler_ServiceFailure(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockBookService{
		FindFn: func(context.Context, domain.BookQuery) ([]*domain.Book, error) {
			return nil, errors.New("pq: connection to 10.0.0.5:5432 refused")
		},
	}
	w := httptest.NewRecorder()
	newTestBookHandler(svc).Find(w, newRequest(http.MethodGet, "/books", "", "", &testActor))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "An unexpected error occurred.", resp.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestBookHandler_GetWrappedNotFound(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockBookService{
		GetFn: func(context.Context, int64) (*domain.Book, error) {
			return nil, errors.Join(errors.New("failed to get book"), store.ErrBookNotFound)
		},
	}
	w := httptest.NewRecorder()
	newTestBookHandler(svc).Get(w, newRequest(http.MethodGet, "/books/1", "", "1", &testActor))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func strPtr(s string) *string { return &s }
