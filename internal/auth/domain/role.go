package domain

import "time"

// Role is created once at startup by the seeder if absent and immutable
// afterwards. Membership is the users↔roles many-to-many relation.
type Role struct {
	ID        string
	Name      string // unique, e.g. "Admin", "Customer"
	CreatedAt time.Time
	UpdatedAt time.Time
}
