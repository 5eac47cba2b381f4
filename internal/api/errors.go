package api

import (
	"errors"

	"github.com/phrazzld/bookshelf-api/internal/api/shared"
	"github.com/phrazzld/bookshelf-api/internal/domain"
	"github.com/phrazzld/bookshelf-api/internal/service"
	"github.com/phrazzld/bookshelf-api/internal/service/auth"
	"github.com/phrazzld/bookshelf-api/internal/store"
)

// MapError classifies err into one of the shared.APIError kinds.
// Errors that are already classified pass through unchanged.
func MapError(err error) *shared.APIError {
	if err == nil {
		return shared.NewInternalError(errors.New("nil error"))
	}

	var apiErr *shared.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return shared.NewValidationError(verr)
	}

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return shared.NewUserError(shared.CodeUserNotFound, shared.MsgUserNotFound, err)
	case errors.Is(err, service.ErrPasswordMismatch):
		return shared.NewUserError(shared.CodePasswordMismatch, shared.MsgPasswordMismatch, err)
	case errors.Is(err, service.ErrUserExists), errors.Is(err, store.ErrUserNameExists):
		return shared.NewBadRequestError(shared.MsgUserExists, err)

	case errors.Is(err, auth.ErrMissingToken):
		return shared.NewAuthError(shared.MsgNoToken, err)
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewAuthError(shared.MsgTokenExpired, err)
	case errors.Is(err, auth.ErrInvalidToken):
		return shared.NewAuthError(shared.MsgUnverifiedToken, err)

	case errors.Is(err, store.ErrBookNotFound):
		return shared.NewNotFoundError("Book not found.", err)
	case errors.Is(err, store.ErrAuthorNotFound):
		return shared.NewNotFoundError("Author not found.", err)
	case errors.Is(err, store.ErrSequenceNotFound):
		// A missing counter is a provisioning fault, not a missing resource.
		return shared.NewInternalError(err)
	case errors.Is(err, store.ErrNotFound):
		return shared.NewNotFoundError("Resource not found.", err)

	case errors.Is(err, store.ErrInvalidEntity):
		return shared.NewBadRequestError("Invalid request.", err)
	}

	return shared.NewInternalError(err)
}
