package service

import (
	"context"
	"testing"
	"time"

	"github.com/carefinder/carefinder/internal/auth/domain"
	"github.com/carefinder/carefinder/internal/auth/store"
	"github.com/carefinder/carefinder/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedRoles(t, st, "Admin", "Customer")

	svc := &UserService{Store: st, DefaultRole: "Customer"}
	auth := &AuthService{Store: st, Tokens: newTestTokenService(t)}

	t.Run("creates an unconfirmed user with the default role", func(t *testing.T) {
		user, token, err := svc.Register(ctx, "New.User@Example.COM", "Secret1")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, "new.user@example.com", user.Email)

		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.False(t, stored.EmailConfirmed)
		require.NotEqual(t, "Secret1", stored.PasswordHash, "password must be stored hashed")

		names, err := st.Users().ListRoleNames(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"Customer"}, names)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "dup@example.com", "Secret1")
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, "dup@example.com", "Other66")
		require.ErrorIs(t, err, ErrDuplicateEmail)

		// Normalization applies before the uniqueness check.
		_, _, err = svc.Register(ctx, "  DUP@example.com ", "Other66")
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("password too short", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "short@example.com", "12345")
		require.ErrorIs(t, err, ErrPasswordTooShort)

		_, err = st.Users().GetUserByEmail(ctx, "short@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unconfirmed user cannot sign in", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "locked@example.com", "Secret1")
		require.NoError(t, err)

		_, err = auth.Login(ctx, "locked@example.com", "Secret1")
		require.ErrorIs(t, err, ErrEmailNotConfirmed)
	})
}

func TestConfirmEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedRoles(t, st, "Customer")

	svc := &UserService{Store: st, DefaultRole: "Customer"}
	auth := &AuthService{Store: st, Tokens: newTestTokenService(t)}

	t.Run("full register-confirm-login flow", func(t *testing.T) {
		user, token, err := svc.Register(ctx, "flow@example.com", "Secret1")
		require.NoError(t, err)

		require.NoError(t, svc.ConfirmEmail(ctx, user.ID, token))

		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, stored.EmailConfirmed)

		_, err = auth.Login(ctx, "flow@example.com", "Secret1")
		require.NoError(t, err)
	})

	t.Run("token cannot be redeemed twice", func(t *testing.T) {
		user, token, err := svc.Register(ctx, "twice@example.com", "Secret1")
		require.NoError(t, err)

		require.NoError(t, svc.ConfirmEmail(ctx, user.ID, token))
		err = svc.ConfirmEmail(ctx, user.ID, token)
		require.ErrorIs(t, err, ErrInvalidConfirmation)
	})

	t.Run("wrong token", func(t *testing.T) {
		user, _, err := svc.Register(ctx, "wrongtok@example.com", "Secret1")
		require.NoError(t, err)

		err = svc.ConfirmEmail(ctx, user.ID, "forged-token")
		require.ErrorIs(t, err, ErrInvalidConfirmation)
	})

	t.Run("token is bound to the persisted user id", func(t *testing.T) {
		_, tokenA, err := svc.Register(ctx, "usera@example.com", "Secret1")
		require.NoError(t, err)
		userB, _, err := svc.Register(ctx, "userb@example.com", "Secret1")
		require.NoError(t, err)

		// A's token must not confirm B, and an id that was never persisted
		// confirms nothing.
		err = svc.ConfirmEmail(ctx, userB.ID, tokenA)
		require.ErrorIs(t, err, ErrInvalidConfirmation)

		err = svc.ConfirmEmail(ctx, idx.New().String(), tokenA)
		require.ErrorIs(t, err, ErrInvalidConfirmation)
	})

	t.Run("expired token", func(t *testing.T) {
		expiring := &UserService{Store: st, DefaultRole: "Customer", ConfirmationTTL: -time.Minute}

		user, token, err := expiring.Register(ctx, "expired@example.com", "Secret1")
		require.NoError(t, err)

		err = expiring.ConfirmEmail(ctx, user.ID, token)
		require.ErrorIs(t, err, ErrInvalidConfirmation)
	})
}

func TestRequestEmailConfirmation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedRoles(t, st, "Customer")

	svc := &UserService{Store: st, DefaultRole: "Customer"}

	t.Run("reissue produces a fresh redeemable token", func(t *testing.T) {
		user, first, err := svc.Register(ctx, "reissue@example.com", "Secret1")
		require.NoError(t, err)

		second, err := svc.RequestEmailConfirmation(ctx, user.ID)
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		require.NoError(t, svc.ConfirmEmail(ctx, user.ID, second))
	})

	t.Run("already confirmed", func(t *testing.T) {
		user, token, err := svc.Register(ctx, "done@example.com", "Secret1")
		require.NoError(t, err)
		require.NoError(t, svc.ConfirmEmail(ctx, user.ID, token))

		_, err = svc.RequestEmailConfirmation(ctx, user.ID)
		require.ErrorIs(t, err, ErrAlreadyConfirmed)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.RequestEmailConfirmation(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	svc := &UserService{Store: st}
	u := domain.User{ID: idx.New().String(), Email: "who@example.com", PasswordHash: "h"}
	require.NoError(t, st.Users().CreateUser(ctx, u))

	got, err := svc.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)

	_, err = svc.GetUserByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}
