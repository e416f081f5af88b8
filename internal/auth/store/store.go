package store

import (
	"context"
	"errors"

	"github.com/carefinder/carefinder/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
//
// Uniqueness (emails, role names, memberships) is enforced by constraints in
// the driver, not by in-process locking: multiple service instances may seed
// or register concurrently and the second writer gets ErrAlreadyExists.
type Store interface {
	Users() Users
	Roles() Roles
	Confirmations() Confirmations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A duplicate normalized email is rejected atomically by the driver's
	// UNIQUE constraint and surfaces as ErrAlreadyExists, never
	// check-then-insert.
	CreateUser(ctx context.Context, u domain.User) error

	// ConfirmEmail flips email_confirmed for the persisted record by id.
	ConfirmEmail(ctx context.Context, userID string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// AddRoleMembership grants a role. Granting a role already held returns
	// ErrAlreadyExists, which seeding callers treat as success.
	AddRoleMembership(ctx context.Context, userID, roleID string) error

	// ListRoleNames returns the names of all roles the user holds.
	ListRoleNames(ctx context.Context, userID string) ([]string, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	// GetRoleByID fetches a role by its ID.
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName fetches a role by its unique name (seeding path).
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// RoleExists reports whether a role with the given name exists.
	RoleExists(ctx context.Context, name string) (bool, error)

	// ListAll returns all roles in the system.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a new role (id is ULID). Duplicate names surface
	// as ErrAlreadyExists.
	CreateRole(ctx context.Context, r domain.Role) error
}

type Confirmations interface {
	// CreateConfirmation stores a pending email-confirmation challenge
	// (token_hash is the SHA-256 fingerprint of the opaque token).
	CreateConfirmation(ctx context.Context, c domain.EmailConfirmation) error

	// GetActiveConfirmation returns the not-used, not-expired challenge for
	// a user id + token fingerprint pair.
	GetActiveConfirmation(ctx context.Context, userID, tokenHash string) (domain.EmailConfirmation, error)

	// MarkConfirmationUsed sets used_at so a token cannot be redeemed twice.
	MarkConfirmationUsed(ctx context.Context, id string) error

	// DeleteExpiredConfirmations is optional housekeeping.
	DeleteExpiredConfirmations(ctx context.Context) error
}
