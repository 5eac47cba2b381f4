// Package service contains the application use cases for books, authors and
// users. It orchestrates interactions between domain objects and the stores
// defined in internal/store.
//
// Services own the audit stamps: the acting principal comes from the
// authentication gate and is passed explicitly to every create and update, so
// a client can never set _id, created or createdBy itself. Operations that
// touch more than one statement run inside store.RunInTransaction.
//
// The service layer depends on domain entities and store interfaces, never on
// a specific persistence implementation.
package service
