// Package auth issues and verifies the bearer tokens that identify users.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT carrying the user's ID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies the token's algorithm, signature and time claims
	// and extracts the user ID.
	// Returns ErrExpiredToken or ErrInvalidToken when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a valid token.
type Claims struct {
	// UserID is the user the token was issued for.
	UserID uuid.UUID

	IssuedAt time.Time

	// ExpiresAt is zero for tokens issued without a lifetime.
	ExpiresAt time.Time
}
