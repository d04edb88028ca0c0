package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomIDGenerator_Next(t *testing.T) {
	t.Run("prefixes the id", func(t *testing.T) {
		gen := NewRandomIDGenerator()
		id := gen.Next(PrefixBranch)
		assert.True(t, strings.HasPrefix(id, "branch-"))
		assert.Len(t, id, len("branch-")+suffixLength)
	})

	t.Run("ids are unique across many draws", func(t *testing.T) {
		gen := NewRandomIDGenerator()
		seen := make(map[string]bool)
		for i := 0; i < 5000; i++ {
			id := gen.Next(PrefixSKU)
			require.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})

	t.Run("widens the suffix when the short form collides", func(t *testing.T) {
		gen := NewRandomIDGenerator()
		draws := []string{
			"aaaaaaaa-0000-4000-8000-000000000001",
			"aaaaaaaa-0000-4000-8000-000000000002",
		}
		gen.source = func() string {
			next := draws[0]
			draws = draws[1:]
			return next
		}

		first := gen.Next(PrefixSKU)
		second := gen.Next(PrefixSKU)

		assert.Equal(t, "sku-aaaaaaaa", first)
		assert.Equal(t, "sku-aaaaaaaa000040008000000000000002", second)
	})

	t.Run("reserved ids are never issued", func(t *testing.T) {
		gen := NewRandomIDGenerator()
		calls := 0
		gen.source = func() string {
			calls++
			if calls == 1 {
				return "bbbbbbbb-0000-4000-8000-000000000001"
			}
			return "cccccccc-0000-4000-8000-000000000001"
		}
		gen.Reserve("branch-bbbbbbbb")
		gen.Reserve("branch-bbbbbbbb000040008000000000000001")

		assert.Equal(t, "branch-cccccccc", gen.Next(PrefixBranch))
	})

	t.Run("issued covers generated and reserved ids", func(t *testing.T) {
		gen := NewRandomIDGenerator()
		id := gen.Next(PrefixBranch)
		gen.Reserve("branch-001")

		assert.True(t, gen.Issued(id))
		assert.True(t, gen.Issued("branch-001"))
		assert.False(t, gen.Issued("branch-002"))
	})
}
