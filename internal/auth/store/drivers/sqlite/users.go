package sqlite

import (
	"context"
	"time"

	"github.com/carefinder/carefinder/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, password_hash, email_confirmed, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, email_confirmed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, boolToInt(u.EmailConfirmed), now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) ConfirmEmail(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email_confirmed = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) AddRoleMembership(ctx context.Context, userID, roleID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role_id, created_at) VALUES (?, ?, ?)`,
		userID, roleID, time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) ListRoleNames(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.name
		 FROM user_roles ur
		 JOIN roles r ON r.id = ur.role_id
		 WHERE ur.user_id = ?
		 ORDER BY r.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u         domain.User
		confirmed int64
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &confirmed, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.EmailConfirmed = confirmed != 0
	return u, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
