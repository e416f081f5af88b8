package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/carefinder/carefinder/internal/auth/domain"
)

type confirmationsRepo struct {
	db dbtx
}

func (r *confirmationsRepo) CreateConfirmation(ctx context.Context, c domain.EmailConfirmation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO email_confirmations (id, user_id, token_hash, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.TokenHash, c.ExpiresAt.UTC(), time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *confirmationsRepo) GetActiveConfirmation(
	ctx context.Context,
	userID, tokenHash string,
) (domain.EmailConfirmation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, used_at, created_at
		 FROM email_confirmations
		 WHERE user_id = ? AND token_hash = ? AND used_at IS NULL AND expires_at > ?`,
		userID, tokenHash, time.Now().UTC(),
	)

	var (
		c      domain.EmailConfirmation
		usedAt sql.NullTime
	)
	err := row.Scan(&c.ID, &c.UserID, &c.TokenHash, &c.ExpiresAt, &usedAt, &c.CreatedAt)
	if err != nil {
		return domain.EmailConfirmation{}, mapNotFound(err)
	}
	if usedAt.Valid {
		t := usedAt.Time
		c.UsedAt = &t
	}
	return c, nil
}

func (r *confirmationsRepo) MarkConfirmationUsed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE email_confirmations SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *confirmationsRepo) DeleteExpiredConfirmations(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM email_confirmations WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
