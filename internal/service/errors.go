package service

import "errors"

// Service errors returned by UserService. The API layer maps the first two
// to 403 and ErrUserExists to 400.
var (
	// ErrUserNotFound indicates no user matched the given user name or id.
	ErrUserNotFound = errors.New("user not found")

	// ErrPasswordMismatch indicates the supplied password does not match the stored hash.
	ErrPasswordMismatch = errors.New("password mismatch")

	// ErrUserExists indicates the user name is already registered.
	ErrUserExists = errors.New("user already exists")
)
