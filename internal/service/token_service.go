package service

import (
	"time"

	"portfolio/internal/domain"
)

// SessionClaims is what a verified session token carries.
type SessionClaims struct {
	UserID    domain.UserID
	SessionID string
	ExpiresAt time.Time
}

type TokenService interface {
	Sign(userID domain.UserID, role domain.Role, sessionID string) (token string, expiresAt time.Time, err error)
	// Parse fails with domain.ErrSessionExpired for expired tokens and
	// domain.ErrInvalidToken for anything else.
	Parse(token string) (*SessionClaims, error)
}
