package fofa_test

import (
	"testing"

	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopStats(t *testing.T) {
	t.Parallel()

	t.Run("descending with limit", func(t *testing.T) {
		t.Parallel()

		entries := fofa.TopStats(map[string]int{"http": 50, "https": 80, "ssh": 80}, 2)

		require.Len(t, entries, 2)
		assert.Equal(t, 80, entries[0].Count)
		assert.Equal(t, 80, entries[1].Count)
		assert.ElementsMatch(t, []string{"https", "ssh"}, []string{entries[0].Value, entries[1].Value})
	})

	t.Run("counts never increase", func(t *testing.T) {
		t.Parallel()

		entries := fofa.TopStats(map[string]int{"a": 3, "b": 9, "c": 1, "d": 7, "e": 7}, 0)

		require.Len(t, entries, 5)

		for i := 1; i < len(entries); i++ {
			assert.GreaterOrEqual(t, entries[i-1].Count, entries[i].Count)
		}
	})

	t.Run("non-positive limit keeps everything", func(t *testing.T) {
		t.Parallel()

		dist := map[string]int{"a": 1, "b": 2, "c": 3}

		assert.Len(t, fofa.TopStats(dist, 0), 3)
		assert.Len(t, fofa.TopStats(dist, -1), 3)
	})

	t.Run("limit larger than distribution", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, fofa.TopStats(map[string]int{"a": 1}, 10), 1)
	})

	t.Run("empty distribution", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, fofa.TopStats(nil, 5))
	})
}
