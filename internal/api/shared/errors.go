package shared

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/bookshelf-api/internal/domain"
)

// ErrorKind tags an APIError with its place in the error taxonomy.
type ErrorKind string

// The closed set of error kinds the responder knows how to render.
const (
	KindValidation  ErrorKind = "validation"
	KindAuth        ErrorKind = "auth"
	KindUser        ErrorKind = "user"
	KindConflict    ErrorKind = "conflict"
	KindNotFound    ErrorKind = "not_found"
	KindRateLimited ErrorKind = "rate_limited"
	KindInternal    ErrorKind = "internal"
)

// User error codes.
const (
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodePasswordMismatch = "PASSWORD_MISMATCH"
)

// Client-facing messages.
const (
	MsgNoToken          = "No token provided."
	MsgTokenExpired     = "Token expired."
	MsgUnverifiedToken  = "Unable to verify token."
	MsgPasswordMismatch = "Passwords did not match."
	MsgUserNotFound     = "No user found under specified user name."
	MsgUserExists       = "Already a user in the system by that name."
	MsgInvalidAuthorIDs = "Invalid author ids. All author ids must be positive integer values."
	MsgTooManyRequests  = "Too many requests."
	MsgInternal         = "An unexpected error occurred."
)

// APIError is the single error shape handed to the ErrorResponder.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Code distinguishes the user error variants.
	Code string
	// Err is the underlying cause; it reaches the client only in development.
	Err error
	// Payload replaces the {message, error} body when set (conflicts).
	Payload any
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusCode returns the carried status, or the default status of the kind.
func (e *APIError) StatusCode() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindUser:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusMethodNotAllowed
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewParamError reports a missing or invalid request parameter.
func NewParamError(field string, err error) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: domain.ParamErrorMessage(field),
		Err:     err,
	}
}

// NewValidationError wraps a domain.ValidationError, keeping its message.
func NewValidationError(verr *domain.ValidationError) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: verr.Message,
		Err:     verr,
	}
}

// NewBadRequestError is a validation failure with a custom message.
func NewBadRequestError(message string, err error) *APIError {
	return &APIError{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Err: err}
}

// NewAuthError rejects a request at the authentication gate.
func NewAuthError(message string, err error) *APIError {
	return &APIError{Kind: KindAuth, Status: http.StatusUnauthorized, Message: message, Err: err}
}

// NewUserError reports a login or credential failure.
func NewUserError(code, message string, err error) *APIError {
	return &APIError{Kind: KindUser, Status: http.StatusForbidden, Code: code, Message: message, Err: err}
}

// NewConflictError blocks an author deletion; blocking is serialized as the body.
func NewConflictError(blocking any) *APIError {
	return &APIError{
		Kind:    KindConflict,
		Status:  http.StatusMethodNotAllowed,
		Message: "Authors are referenced by existing books.",
		Payload: blocking,
	}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string, err error) *APIError {
	return &APIError{Kind: KindNotFound, Status: http.StatusNotFound, Message: message, Err: err}
}

// NewRateLimitedError rejects a throttled client.
func NewRateLimitedError() *APIError {
	return &APIError{Kind: KindRateLimited, Status: http.StatusTooManyRequests, Message: MsgTooManyRequests}
}

// NewInternalError wraps an unclassified failure.
func NewInternalError(err error) *APIError {
	return &APIError{Kind: KindInternal, Status: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}
