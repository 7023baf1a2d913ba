package idx

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("ids are unique", func(t *testing.T) {
		seen := make(map[ID]bool)
		for i := 0; i < 1000; i++ {
			id := New()
			require.False(t, seen[id])
			seen[id] = true
		}
	})

	t.Run("ids sort in generation order", func(t *testing.T) {
		ids := make([]string, 100)
		for i := range ids {
			ids[i] = New().String()
		}
		require.True(t, sort.StringsAreSorted(ids))
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		id := New()
		parsed, err := Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := Parse("definitely-not-a-ulid")
		require.Error(t, err)
	})

	t.Run("carries its timestamp", func(t *testing.T) {
		now := time.Now()
		id := NewAt(now)
		require.WithinDuration(t, now, id.Time(), time.Millisecond)
	})
}
