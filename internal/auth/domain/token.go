package domain

import "time"

// AccessToken is the issued, signed token plus the metadata a caller needs
// to use it. The token itself is never persisted; it is validated purely by
// signature and expiry.
type AccessToken struct {
	Token     string
	TokenType string // always "Bearer"
	ExpiresIn time.Duration
}

// Principal is the reconstructed identity produced by successful token
// validation. Roles are a snapshot from issuance time.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

// HasRole reports whether the principal's snapshot contains the role.
func (p Principal) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}
