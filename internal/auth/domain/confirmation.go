package domain

import "time"

// EmailConfirmation is a pending confirmation challenge for a persisted user.
// Only the SHA-256 fingerprint of the opaque token is stored; confirmation is
// always resolved against the stored record by user id, never against an
// in-memory user that was never saved.
type EmailConfirmation struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
