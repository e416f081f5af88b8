package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/carefinder/carefinder/internal/auth/domain"
	"github.com/carefinder/carefinder/internal/auth/store"
	"github.com/carefinder/carefinder/pkg/cryptox"
	"github.com/carefinder/carefinder/pkg/idx"
	"github.com/carefinder/carefinder/pkg/slogx"
)

// SeedService provisions the fixed role set and the bootstrap account. Run
// is called exactly once at process start, before the server accepts
// traffic, and must complete or fail fatally. A login must never observe a
// half-seeded role set.
//
// Every step is idempotent. Uniqueness races with other instances of the
// service seeding the same database are resolved by the store rejecting the
// second writer, which we treat as "already done".
type SeedService struct {
	Store store.Store

	// RoleNames is the fixed role set, e.g. {"Admin", "Customer"}.
	RoleNames []string

	// AdminRole names the administrative role the bootstrap account holds.
	// Must be one of RoleNames.
	AdminRole string

	BootstrapEmail    string
	BootstrapPassword string
}

// Run creates missing roles, then ensures the bootstrap account exists,
// has a confirmed email and holds the administrative role.
func (s *SeedService) Run(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if s.AdminRole == "" || !slices.Contains(s.RoleNames, s.AdminRole) {
		return fmt.Errorf("seed: admin role %q is not in the configured role set", s.AdminRole)
	}
	if s.BootstrapEmail == "" || s.BootstrapPassword == "" {
		return errors.New("seed: bootstrap email and password must be configured")
	}

	if err := s.seedRoles(ctx); err != nil {
		return err
	}

	adminRole, err := s.Store.Roles().GetRoleByName(ctx, s.AdminRole)
	if err != nil {
		return fmt.Errorf("seed: load admin role: %w", err)
	}

	if err := s.seedBootstrapUser(ctx, adminRole); err != nil {
		return err
	}

	l.Info("seeding complete",
		"roles", s.RoleNames,
		"bootstrap_email", domain.NormalizeEmail(s.BootstrapEmail),
	)
	return nil
}

func (s *SeedService) seedRoles(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	for _, name := range s.RoleNames {
		err := s.Store.Roles().CreateRole(ctx, domain.Role{
			ID:   idx.New().String(),
			Name: name,
		})
		switch {
		case err == nil:
			l.Info("created role", "role", name)
		case errors.Is(err, store.ErrAlreadyExists):
			// Another run (or another instance) got there first.
		default:
			return fmt.Errorf("seed: create role %q: %w", name, err)
		}
	}
	return nil
}

func (s *SeedService) seedBootstrapUser(ctx context.Context, adminRole domain.Role) error {
	l := slogx.FromContext(ctx)
	email := domain.NormalizeEmail(s.BootstrapEmail)

	existing, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		// Idempotent no-op: never re-create, never duplicate a grant. The
		// membership insert below reports already-exists when the role is
		// already held, which is success here.
		err := s.Store.Users().AddRoleMembership(ctx, existing.ID, adminRole.ID)
		if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
			return fmt.Errorf("seed: grant %q to existing bootstrap user: %w", adminRole.Name, err)
		}
		return nil
	case errors.Is(err, store.ErrNotFound):
		// Fall through to creation.
	default:
		return fmt.Errorf("seed: look up bootstrap user: %w", err)
	}

	hash, err := cryptox.HashPassword(s.BootstrapPassword)
	if err != nil {
		return fmt.Errorf("seed: hash bootstrap password: %w", err)
	}

	userID := idx.New().String()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Created directly as confirmed: this is the persisted record, keyed
		// by id. There is no confirmation-token dance against a user object
		// that was never saved.
		if err := tx.Users().CreateUser(ctx, domain.User{
			ID:             userID,
			Email:          email,
			PasswordHash:   hash,
			EmailConfirmed: true,
		}); err != nil {
			return err
		}
		return tx.Users().AddRoleMembership(ctx, userID, adminRole.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// A concurrent instance created the account between our lookup
			// and the insert. Make sure the grant landed, then we're done.
			return s.ensureExistingGrant(ctx, email, adminRole)
		}
		return fmt.Errorf("seed: create bootstrap user: %w", err)
	}

	l.Info("created bootstrap user", "user_id", userID, "role", adminRole.Name)
	return nil
}

func (s *SeedService) ensureExistingGrant(ctx context.Context, email string, adminRole domain.Role) error {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("seed: reload bootstrap user: %w", err)
	}
	err = s.Store.Users().AddRoleMembership(ctx, u.ID, adminRole.ID)
	if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
		return fmt.Errorf("seed: grant %q to bootstrap user: %w", adminRole.Name, err)
	}
	return nil
}
