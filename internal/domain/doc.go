// Package domain contains the core business entities of the bookshelf:
// books, authors, users and the identity carried by an access token.
// It also owns the small set of value rules shared by every layer, such as
// what counts as a valid sequence id and how dates of birth are written.
package domain
