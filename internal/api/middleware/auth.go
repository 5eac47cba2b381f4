package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/bookshelf-api/internal/api/shared"
	"github.com/phrazzld/bookshelf-api/internal/metrics"
	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/redact"
	"github.com/phrazzld/bookshelf-api/internal/service/auth"
)

// Where a token may be supplied, in lookup order.
const (
	TokenHeader     = "x-access-token"
	TokenBodyField  = "token"
	TokenQueryParam = "token"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	errors     *shared.ErrorResponder
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
// A nil recorder disables metrics.
func NewAuthMiddleware(
	jwtService auth.JWTService,
	responder *shared.ErrorResponder,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *AuthMiddleware {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		errors:     responder,
		recorder:   recorder,
		logger:     logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate verifies the request token and attaches the decoded principal
// to the request context. Rejected requests never reach next.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		token := ExtractToken(r)
		if token == "" {
			m.recorder.RecordAuthFailure("missing")
			m.errors.Respond(w, r, shared.NewAuthError(shared.MsgNoToken, auth.ErrMissingToken))
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				m.recorder.RecordAuthFailure("expired")
				m.errors.Respond(w, r, shared.NewAuthError(shared.MsgTokenExpired, err))
				return
			}
			if !errors.Is(err, auth.ErrInvalidToken) {
				log.Warn("unexpected token validation failure", slog.String("error", redact.Error(err)))
			}
			m.recorder.RecordAuthFailure("invalid")
			m.errors.Respond(w, r, shared.NewAuthError(shared.MsgUnverifiedToken, err))
			return
		}

		ctx := shared.SetPrincipal(r.Context(), claims.Principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractToken returns the first token found in the x-access-token header,
// the JSON body field "token" or the "token" query parameter. The body is
// left readable for the next handler.
func ExtractToken(r *http.Request) string {
	if token := r.Header.Get(TokenHeader); token != "" {
		return token
	}

	if body, err := shared.ReadBody(r); err == nil && len(body) > 0 {
		var payload map[string]any
		if json.Unmarshal(body, &payload) == nil {
			if token, ok := payload[TokenBodyField].(string); ok && token != "" {
				return token
			}
		}
	}

	return r.URL.Query().Get(TokenQueryParam)
}
