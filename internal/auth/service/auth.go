package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/carefinder/carefinder/internal/auth/domain"
	"github.com/carefinder/carefinder/internal/auth/store"
	"github.com/carefinder/carefinder/pkg/cryptox"
	"github.com/carefinder/carefinder/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password".
	// Callers must never learn which one occurred.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrEmailNotConfirmed is returned only after the password verified, so
	// it discloses nothing to anyone who doesn't hold the credential.
	ErrEmailNotConfirmed = errors.New("email_not_confirmed")

	// ErrUnauthorized is the single outward outcome for any token
	// validation failure.
	ErrUnauthorized = errors.New("unauthorized")
)

// AuthService is the façade composing the credential store, password hasher
// and token service: Login verifies a credential and issues a token,
// Authenticate validates a token and reconstructs the principal.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Login verifies the email/password pair and issues an access token with the
// user's current role snapshot.
//
// The unknown-user path runs a verification against a throwaway hash so its
// timing matches the wrong-password path.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AccessToken, error) {
	l := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			burnPasswordVerify(password)
			return domain.AccessToken{}, ErrInvalidCredentials
		}
		return domain.AccessToken{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrCorruptHash) {
			// Storage fault, not a failed attempt. Must never degrade into a
			// silent non-match or, worse, a match.
			l.Error("stored password hash is corrupt", "user_id", u.ID, "err", err)
			return domain.AccessToken{}, fmt.Errorf("verify credential: %w", err)
		}
		return domain.AccessToken{}, ErrInvalidCredentials
	}

	if !u.EmailConfirmed {
		return domain.AccessToken{}, ErrEmailNotConfirmed
	}

	roles, err := s.Store.Users().ListRoleNames(ctx, u.ID)
	if err != nil {
		return domain.AccessToken{}, err
	}

	token, err := s.Tokens.Issue(u, roles, time.Now().UTC())
	if err != nil {
		return domain.AccessToken{}, err
	}

	l.Info("login succeeded", "user_id", u.ID)
	return token, nil
}

// Authenticate validates a bearer token and reconstructs the principal. Any
// validation failure collapses to ErrUnauthorized at this boundary; the
// distinct kind (expired vs bad signature vs malformed) goes to the log
// only, so the API never acts as a validation oracle.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	p, err := s.Tokens.Validate(token, time.Now().UTC())
	if err != nil {
		slogx.FromContext(ctx).Warn("token rejected", "err", err)
		return domain.Principal{}, ErrUnauthorized
	}
	return p, nil
}

var (
	burnOnce sync.Once
	burnHash string
)

// burnPasswordVerify performs a full Argon2id verification against a fixed
// throwaway hash. Called on the unknown-user login path so it costs the
// same as verifying against a real stored hash.
func burnPasswordVerify(password string) {
	burnOnce.Do(func() {
		burnHash, _ = cryptox.HashPassword("timing-equalization-placeholder")
	})
	_ = cryptox.VerifyPassword(password, burnHash)
}
