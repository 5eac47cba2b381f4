package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/bookshelf-api/internal/api/shared"
	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/stretchr/testify/require"
)

var (
	testActor = domain.Principal{ID: 3, UserName: "reader"}
	testAdmin = domain.Principal{ID: 1, UserName: "admin", Admin: true}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testResponder() *shared.ErrorResponder {
	return shared.NewErrorResponder(false, discardLogger())
}

// newRequest builds a request as the router would hand it over: with the
// {id} URL parameter resolved and, when principal is non-nil, authenticated.
func newRequest(method, target, body, pathID string, principal *domain.Principal) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	ctx := req.Context()
	if pathID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", pathID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	if principal != nil {
		ctx = shared.SetPrincipal(ctx, *principal)
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}
