package api

// Identifier fields are typed any so that validation, not JSON decoding,
// decides what counts as a sequence id.

// CreateBookRequest is the body of POST /books.
type CreateBookRequest struct {
	Title   string  `json:"title" validate:"required"`
	ISBN    *string `json:"isbn"`
	Authors []any   `json:"authors"`
}

// UpdateBookRequest is the body of PUT /books/{id}.
type UpdateBookRequest struct {
	ID      any     `json:"id"`
	Title   string  `json:"title" validate:"required"`
	ISBN    *string `json:"isbn"`
	Authors []any   `json:"authors"`
}

// CreateAuthorRequest is the body of POST /authors.
type CreateAuthorRequest struct {
	Name string `json:"name" validate:"required"`
	DOB  string `json:"dob" validate:"required,mmddyyyy"`
}

// UpdateAuthorRequest is the body of PUT /authors/{id}.
type UpdateAuthorRequest struct {
	ID   any    `json:"id"`
	Name string `json:"name" validate:"required"`
	DOB  string `json:"dob" validate:"required,mmddyyyy"`
}

// DeleteRequest is the body of DELETE /books and DELETE /authors.
type DeleteRequest struct {
	IDs []any `json:"ids"`
}

// CredentialsRequest is the body of POST /users/register and POST /users/login.
type CredentialsRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the body of PUT /users/{id}.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
	UserID      any    `json:"userId"`
}

// BookCreatedResponse answers POST /books.
type BookCreatedResponse struct {
	BookID int64 `json:"bookId"`
}

// AuthorCreatedResponse answers POST /authors.
type AuthorCreatedResponse struct {
	AuthorID int64 `json:"authorId"`
}

// SuccessResponse answers updates.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// TokenResponse answers a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
