package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// Verify PHC format
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Contains(t, parts[3], "m=", "should contain memory parameter")
			require.Contains(t, parts[3], "t=", "should contain iterations parameter")
			require.Contains(t, parts[3], "p=", "should contain parallelism parameter")
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")
		})
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "same password should produce different hashes")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Secret1")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("Secret1", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := VerifyPassword("Secret2", hash)
		require.ErrorIs(t, err, ErrMismatch)
	})

	t.Run("case sensitive", func(t *testing.T) {
		err := VerifyPassword("secret1", hash)
		require.ErrorIs(t, err, ErrMismatch)
	})
}

func TestVerifyPasswordCorruptHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not PHC", "plainly-not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing params", "$argon2id$v=19$$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
		{"bad hash encoding", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!"},
		{"truncated", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword("anything", tt.hash)
			require.ErrorIs(t, err, ErrCorruptHash)
			require.NotErrorIs(t, err, ErrMismatch,
				"corrupt hashes must not be reported as a plain mismatch")
		})
	}
}
