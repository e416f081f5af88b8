package service

import (
	"context"

	"github.com/carefinder/carefinder/internal/auth/domain"
	"github.com/carefinder/carefinder/internal/auth/store"
)

// RolesService exposes read access to the provisioned roles.
type RolesService struct {
	Store store.Store
}

// ListRoles returns every provisioned role.
func (s *RolesService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

// GetRoleByName fetches a single role by its unique name.
func (s *RolesService) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	return s.Store.Roles().GetRoleByName(ctx, name)
}

// RolesForUser returns the role names granted to a user.
func (s *RolesService) RolesForUser(ctx context.Context, userID string) ([]string, error) {
	return s.Store.Users().ListRoleNames(ctx, userID)
}
