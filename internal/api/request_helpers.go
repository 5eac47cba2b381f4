package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/bookshelf-api/internal/api/shared"
	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/service/auth"
)

// MsgMalformedBody rejects a body that is not valid JSON for the endpoint.
const MsgMalformedBody = "Malformed JSON request body."

// decodeBody decodes the JSON body into v, classifying syntax and type
// errors as validation failures.
func decodeBody(r *http.Request, v any) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		return shared.NewBadRequestError(MsgMalformedBody, err)
	}
	return nil
}

// getPathID parses the {id} URL parameter as a sequence id.
func getPathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, shared.NewParamError("id", domain.ErrInvalidID)
	}
	return id, nil
}

// pathMatches reports whether the {id} URL parameter, when present, names id.
func pathMatches(r *http.Request, id int64) bool {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return true
	}
	pathID, err := strconv.ParseInt(raw, 10, 64)
	return err == nil && pathID == id
}

// principalFromRequest returns the identity attached by the auth middleware,
// writing a 401 when the route was mounted without it.
func principalFromRequest(
	w http.ResponseWriter,
	r *http.Request,
	responder *shared.ErrorResponder,
	log *slog.Logger,
) (domain.Principal, bool) {
	principal, ok := shared.GetPrincipal(r.Context())
	if !ok {
		log.Warn("principal missing from request context", slog.String("path", r.URL.Path))
		responder.Respond(w, r, shared.NewAuthError(shared.MsgNoToken, auth.ErrMissingToken))
		return domain.Principal{}, false
	}
	return principal, true
}
