package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens.
// Overridable per-service through configuration.
const DefaultAccessTokenTTL = time.Hour

// Claims are the access-token claims used across the service. Role names are
// a snapshot taken at issuance time: validation is pure and never consults
// the store, so a role change only takes effect on re-login or expiry.
type Claims struct {
	jwt.RegisteredClaims

	// Roles the subject held when the token was issued, e.g. ["Admin"].
	Roles []string `json:"roles,omitempty"`

	// Email is the normalized email of the subject, for display only.
	// Authorization decisions key off Subject and Roles.
	Email string `json:"email,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for an access token.
func NewAccessClaims(
	subject string,
	roles []string,
	email string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Roles: roles,
		Email: email,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasRole reports whether the claims carry the given role name.
func (c *Claims) HasRole(name string) bool {
	for _, r := range c.Roles {
		if r == name {
			return true
		}
	}
	return false
}
