package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carefinder/carefinder/internal/auth/domain"
	"github.com/carefinder/carefinder/internal/auth/store"
	"github.com/carefinder/carefinder/pkg/cryptox"
	"github.com/carefinder/carefinder/pkg/idx"
	"github.com/carefinder/carefinder/pkg/slogx"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

// DefaultConfirmationTTL bounds how long an email-confirmation token stays
// redeemable.
const DefaultConfirmationTTL = 24 * time.Hour

var (
	ErrDuplicateEmail      = errors.New("duplicate_email")
	ErrPasswordTooShort    = errors.New("password_too_short")
	ErrInvalidConfirmation = errors.New("invalid_confirmation_token")
	ErrAlreadyConfirmed    = errors.New("email_already_confirmed")
)

// UserService handles registration and email confirmation.
type UserService struct {
	Store store.Store

	// DefaultRole is granted to every registered user, e.g. "Customer".
	DefaultRole string

	// ConfirmationTTL defaults to DefaultConfirmationTTL when zero.
	ConfirmationTTL time.Duration
}

// Register creates an unconfirmed user with the default role and returns the
// user plus an opaque confirmation token. Delivering the token (email) is
// out of scope here; the caller decides how it reaches the account owner.
func (s *UserService) Register(ctx context.Context, email, password string) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if len(password) < MinPasswordLen {
		return domain.User{}, "", ErrPasswordTooShort
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	var defaultRole domain.Role
	if s.DefaultRole != "" {
		defaultRole, err = s.Store.Roles().GetRoleByName(ctx, s.DefaultRole)
		if err != nil {
			return domain.User{}, "", fmt.Errorf("load default role %q: %w", s.DefaultRole, err)
		}
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		if defaultRole.ID != "" {
			return tx.Users().AddRoleMembership(ctx, u.ID, defaultRole.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrDuplicateEmail
		}
		return domain.User{}, "", err
	}

	token, err := s.RequestEmailConfirmation(ctx, u.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	l.Info("registered user", "user_id", u.ID)
	return u, token, nil
}

// RequestEmailConfirmation mints a fresh confirmation token for a persisted
// user, identified by id. Only the token's fingerprint is stored.
func (s *UserService) RequestEmailConfirmation(ctx context.Context, userID string) (string, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u.EmailConfirmed {
		return "", ErrAlreadyConfirmed
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	ttl := s.ConfirmationTTL
	if ttl == 0 {
		ttl = DefaultConfirmationTTL
	}

	err = s.Store.Confirmations().CreateConfirmation(ctx, domain.EmailConfirmation{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: time.Now().UTC().Add(ttl),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// ConfirmEmail redeems a confirmation token against the stored user record.
// Confirmation always operates on the persisted row by user id, so a token
// can never confirm an instance that was never saved.
func (s *UserService) ConfirmEmail(ctx context.Context, userID, token string) error {
	fp := cryptox.FingerprintToken(token)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Confirmations().GetActiveConfirmation(ctx, userID, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidConfirmation
			}
			return err
		}
		if err := tx.Confirmations().MarkConfirmationUsed(ctx, c.ID); err != nil {
			return err
		}
		return tx.Users().ConfirmEmail(ctx, c.UserID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("email confirmed", "user_id", userID)
	return nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
