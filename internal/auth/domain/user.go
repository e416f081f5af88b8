package domain

import (
	"strings"
	"time"
)

type User struct {
	ID             string
	Email          string // normalized, unique
	PasswordHash   string // argon2id PHC encoded, never serialized outward
	EmailConfirmed bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
// Trim + case-fold is the uniqueness key for the whole system, so every
// path that touches an email must go through here.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
