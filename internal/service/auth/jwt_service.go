package auth

import (
	"context"
	"time"

	"github.com/phrazzld/bookshelf-api/internal/domain"
)

// JWTService defines operations for managing JWT access tokens.
type JWTService interface {
	// GenerateToken signs a token carrying the principal, valid for the configured lifetime.
	GenerateToken(ctx context.Context, principal domain.Principal) (string, error)

	// GenerateTokenWithTTL signs a token valid for ttl from now. A negative ttl
	// produces a token that is already expired.
	GenerateTokenWithTTL(ctx context.Context, principal domain.Principal, ttl time.Duration) (string, error)

	// ValidateToken verifies signature and expiry and returns the embedded claims.
	// Returns ErrExpiredToken for a well-signed token past its expiry and
	// ErrInvalidToken for anything else that fails verification.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a valid access token.
type Claims struct {
	Principal domain.Principal

	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
