package sqlite

import (
	"context"
	"time"

	"github.com/carefinder/carefinder/internal/auth/domain"
)

type rolesRepo struct {
	db dbtx
}

const roleColumns = `id, name, created_at, updated_at`

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE id = ?`, id)
	return scanRole(row)
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE name = ?`, name)
	return scanRole(row)
}

func (r *rolesRepo) RoleExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roles WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roleColumns+` FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		role.ID, role.Name, now, now,
	)
	return mapConstraint(err)
}

func scanRole(row rowScanner) (domain.Role, error) {
	var role domain.Role
	err := row.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}
