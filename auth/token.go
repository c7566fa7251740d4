// Package auth reads the session token issued by the chat server.
// Verification happens server-side on connect; the client only extracts its
// own identity and expiry from the claims, to label the session and warn
// before the token lapses.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the subset of the server's JWT payload the client uses.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ReadClaims parses the token without verifying the signature: the client
// does not hold the signing key, the server rejects tampered tokens anyway.
func ReadClaims(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ExpiresWithin reports whether the token lapses inside the given window.
// Tokens without an expiry never do.
func (c *SessionClaims) ExpiresWithin(window time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Until(c.ExpiresAt.Time) < window
}
