// Package session inspects the member's session token before it is sent.
//
// The token is issued by the external authentication collaborator. The
// client never verifies signatures; it only reads the expiry so an expired
// session fails locally instead of round-tripping to the authority.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/osse101/PointStore_Go/internal/domain"
)

// Token is a bearer token with its optional expiry
type Token struct {
	raw       string
	subject   string
	expiresAt time.Time
}

// Parse reads a bearer token. Opaque (non-JWT) tokens are accepted without an expiry.
func Parse(raw string) (*Token, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if raw == "" {
		return nil, fmt.Errorf("%w: empty session token", domain.ErrInvalidInput)
	}

	t := &Token{raw: raw}
	if strings.Count(raw, ".") != 2 {
		return t, nil
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: malformed session token: %v", domain.ErrInvalidInput, err)
	}
	t.subject = claims.Subject
	if claims.ExpiresAt != nil {
		t.expiresAt = claims.ExpiresAt.Time
	}
	return t, nil
}

// Raw returns the token as it is sent on the wire
func (t *Token) Raw() string { return t.raw }

// Subject is the login id carried by the token, if any
func (t *Token) Subject() string { return t.subject }

// ExpiresAt is zero for tokens without an expiry
func (t *Token) ExpiresAt() time.Time { return t.expiresAt }

// Check fails with ErrSessionExpired once the token is past its expiry
func (t *Token) Check(now time.Time) error {
	if t == nil {
		return nil
	}
	if !t.expiresAt.IsZero() && !now.Before(t.expiresAt) {
		return fmt.Errorf("%w: expired at %s", domain.ErrSessionExpired, t.expiresAt.Format(time.RFC3339))
	}
	return nil
}
