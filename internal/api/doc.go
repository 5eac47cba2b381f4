// Package api holds the HTTP handlers for books, authors and users.
// Handlers decode and validate the request before any service call,
// then hand every failure to the shared ErrorResponder through MapError.
package api
