package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/bookshelf-api/internal/platform/logger"
	"github.com/phrazzld/bookshelf-api/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Message string `json:"message"`
	// Error holds ErrorDetails in development and an empty object otherwise.
	Error   any    `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorDetails is the diagnostic part of an error response.
type ErrorDetails struct {
	Kind  ErrorKind `json:"kind"`
	Cause string    `json:"cause,omitempty"`
	Type  string    `json:"type,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponder is the single place where errors become HTTP responses.
type ErrorResponder struct {
	exposeDetails bool
	logger        *slog.Logger
}

// NewErrorResponder creates an ErrorResponder. exposeDetails should only be
// true in development.
func NewErrorResponder(exposeDetails bool, logger *slog.Logger) *ErrorResponder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorResponder{
		exposeDetails: exposeDetails,
		logger:        logger.With(slog.String("component", "error_responder")),
	}
}

// Respond writes err. Anything that is not an *APIError is treated as internal.
//
// Log level strategy:
//   - 5xx errors: ERROR
//   - 429 Too Many Requests: WARN
//   - other 4xx errors: DEBUG
func (er *ErrorResponder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = NewInternalError(err)
	}
	status := apiErr.StatusCode()
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("kind", string(apiErr.Kind)),
		slog.String("user_message", apiErr.Message),
	}
	if apiErr.Err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(apiErr.Err)),
			slog.String("error_type", fmt.Sprintf("%T", apiErr.Err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if status == http.StatusTooManyRequests {
		logLevel = slog.LevelWarn
	}
	log := logger.FromContextOrDefault(r.Context(), er.logger)
	log.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	if apiErr.Payload != nil {
		RespondWithJSON(w, r, status, apiErr.Payload)
		return
	}

	resp := ErrorResponse{
		Message: apiErr.Message,
		Error:   struct{}{},
		Code:    apiErr.Code,
		TraceID: traceID,
	}
	if er.exposeDetails {
		details := ErrorDetails{Kind: apiErr.Kind}
		if apiErr.Err != nil {
			details.Cause = redact.Error(apiErr.Err)
			details.Type = fmt.Sprintf("%T", apiErr.Err)
		}
		resp.Error = details
	}
	RespondWithJSON(w, r, status, resp)
}
