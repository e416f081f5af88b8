package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/carefinder/carefinder/internal/auth/domain"
	"github.com/carefinder/carefinder/internal/auth/store"
	"github.com/carefinder/carefinder/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	user := domain.User{
		ID:           idx.New().String(),
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, st.Users().CreateUser(ctx, user))

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, got.Email)
		require.Equal(t, user.PasswordHash, got.PasswordHash)
		require.False(t, got.EmailConfirmed)
		require.False(t, got.CreatedAt.IsZero())

		byEmail, err := st.Users().GetUserByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := domain.User{
			ID:           idx.New().String(),
			Email:        user.Email,
			PasswordHash: "other",
		}
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unknown lookups report not found", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("confirm email", func(t *testing.T) {
		require.NoError(t, st.Users().ConfirmEmail(ctx, user.ID))

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, got.EmailConfirmed)
	})

	t.Run("confirm unknown user reports not found", func(t *testing.T) {
		err := st.Users().ConfirmEmail(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update password hash", func(t *testing.T) {
		require.NoError(t, st.Users().UpdatePasswordHash(ctx, user.ID, "new-hash"))

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "new-hash", got.PasswordHash)
	})

	t.Run("is empty", func(t *testing.T) {
		empty, err := st.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})
}

func TestRoleMemberships(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	admin := domain.Role{ID: idx.New().String(), Name: "Admin"}
	customer := domain.Role{ID: idx.New().String(), Name: "Customer"}
	require.NoError(t, st.Roles().CreateRole(ctx, admin))
	require.NoError(t, st.Roles().CreateRole(ctx, customer))

	user := domain.User{ID: idx.New().String(), Email: "bob@example.com", PasswordHash: "h"}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	t.Run("duplicate role name rejected", func(t *testing.T) {
		err := st.Roles().CreateRole(ctx, domain.Role{ID: idx.New().String(), Name: "Admin"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookup by name", func(t *testing.T) {
		got, err := st.Roles().GetRoleByName(ctx, "Admin")
		require.NoError(t, err)
		require.Equal(t, admin.ID, got.ID)

		exists, err := st.Roles().RoleExists(ctx, "Admin")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = st.Roles().RoleExists(ctx, "Missing")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("list all", func(t *testing.T) {
		roles, err := st.Roles().ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 2)
	})

	t.Run("grant and list", func(t *testing.T) {
		require.NoError(t, st.Users().AddRoleMembership(ctx, user.ID, admin.ID))
		require.NoError(t, st.Users().AddRoleMembership(ctx, user.ID, customer.ID))

		names, err := st.Users().ListRoleNames(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"Admin", "Customer"}, names)
	})

	t.Run("duplicate grant rejected", func(t *testing.T) {
		err := st.Users().AddRoleMembership(ctx, user.ID, admin.ID)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("no roles yields empty list", func(t *testing.T) {
		lonely := domain.User{ID: idx.New().String(), Email: "lonely@example.com", PasswordHash: "h"}
		require.NoError(t, st.Users().CreateUser(ctx, lonely))

		names, err := st.Users().ListRoleNames(ctx, lonely.ID)
		require.NoError(t, err)
		require.Empty(t, names)
	})
}

func TestConfirmationsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	user := domain.User{ID: idx.New().String(), Email: "carol@example.com", PasswordHash: "h"}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	active := domain.EmailConfirmation{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: "fingerprint-1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, st.Confirmations().CreateConfirmation(ctx, active))

	t.Run("active lookup", func(t *testing.T) {
		got, err := st.Confirmations().GetActiveConfirmation(ctx, user.ID, "fingerprint-1")
		require.NoError(t, err)
		require.Equal(t, active.ID, got.ID)
		require.Nil(t, got.UsedAt)
	})

	t.Run("wrong fingerprint reports not found", func(t *testing.T) {
		_, err := st.Confirmations().GetActiveConfirmation(ctx, user.ID, "fingerprint-2")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("expired challenge is not active", func(t *testing.T) {
		expired := domain.EmailConfirmation{
			ID:        idx.New().String(),
			UserID:    user.ID,
			TokenHash: "fingerprint-expired",
			ExpiresAt: time.Now().UTC().Add(-time.Minute),
		}
		require.NoError(t, st.Confirmations().CreateConfirmation(ctx, expired))

		_, err := st.Confirmations().GetActiveConfirmation(ctx, user.ID, "fingerprint-expired")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("mark used is single shot", func(t *testing.T) {
		require.NoError(t, st.Confirmations().MarkConfirmationUsed(ctx, active.ID))

		_, err := st.Confirmations().GetActiveConfirmation(ctx, user.ID, "fingerprint-1")
		require.ErrorIs(t, err, store.ErrNotFound)

		err = st.Confirmations().MarkConfirmationUsed(ctx, active.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete expired", func(t *testing.T) {
		require.NoError(t, st.Confirmations().DeleteExpiredConfirmations(ctx))

		// Used-but-unexpired rows stay, expired rows are gone.
		var count int64
		err := st.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_confirmations`).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, int64(1), count)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	role := domain.Role{ID: idx.New().String(), Name: "Customer"}
	require.NoError(t, st.Roles().CreateRole(ctx, role))

	t.Run("commit persists all writes", func(t *testing.T) {
		user := domain.User{ID: idx.New().String(), Email: "tx@example.com", PasswordHash: "h"}

		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				return err
			}
			return tx.Users().AddRoleMembership(ctx, user.ID, role.ID)
		})
		require.NoError(t, err)

		names, err := st.Users().ListRoleNames(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"Customer"}, names)
	})

	t.Run("error rolls back all writes", func(t *testing.T) {
		user := domain.User{ID: idx.New().String(), Email: "rollback@example.com", PasswordHash: "h"}

		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				return err
			}
			// Unknown role id violates the FK and aborts the whole tx.
			return tx.Users().AddRoleMembership(ctx, user.ID, "no-such-role")
		})
		require.Error(t, err)

		_, err = st.Users().GetUserByEmail(ctx, "rollback@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
