package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("generates unique ids", func(t *testing.T) {
		seen := make(map[ID]bool)
		for range 1000 {
			id := New()
			require.False(t, seen[id], "id collision")
			seen[id] = true
		}
	})

	t.Run("ids are lexicographically sortable", func(t *testing.T) {
		a := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		b := NewAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		require.Less(t, a.String(), b.String())
	})
}

func TestParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		id := New()
		parsed, err := Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := Parse("not-a-ulid")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := Parse("")
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestIDTime(t *testing.T) {
	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	id := NewAt(at)
	require.WithinDuration(t, at, id.Time(), time.Millisecond)
}

func TestIsZero(t *testing.T) {
	require.True(t, Zero.IsZero())
	require.False(t, New().IsZero())
}
