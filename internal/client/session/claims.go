package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the client can learn from a token without the server key.
// It is informational only: the backend remains the authority.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// Inspect decodes a JWT bearer token without verifying its signature.
// Opaque (non-JWT) tokens return an error.
func Inspect(token string) (Claims, error) {
	t, ok := SanitizeToken(token)
	if !ok {
		return Claims{}, fmt.Errorf("inspect token: empty")
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t, mc); err != nil {
		return Claims{}, fmt.Errorf("inspect token: %w", err)
	}

	var c Claims
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if role, ok := mc["role"].(string); ok {
		c.Role = role
	}
	return c, nil
}

// Expired reports whether the token carried an expiry that is before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
