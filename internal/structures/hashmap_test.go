package structures

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/internal/config"
	"algoviz/internal/step"
)

func TestHashMapSetGetDelete(t *testing.T) {
	var steps []step.Step
	h := NewHashMap(config.DefaultHashConfig(), collectSteps(&steps))

	h.Set("alpha", 1)
	v, ok := h.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = h.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, false, steps[len(steps)-1].Meta.(step.HashGetMeta).Found)

	require.True(t, h.Delete("alpha"))
	require.False(t, h.Delete("alpha"), "second delete misses but still emits")
	assert.Equal(t, false, steps[len(steps)-1].Meta.(step.HashDeleteMeta).Deleted)
	assert.Equal(t, 0, h.Size())
}

func TestHashMapUpdateDoesNotGrow(t *testing.T) {
	var steps []step.Step
	h := NewHashMap(config.DefaultHashConfig(), collectSteps(&steps))

	h.Set("k", 1)
	h.Set("k", 2)

	assert.Equal(t, 1, h.Size())
	meta := steps[1].Meta.(step.HashSetMeta)
	assert.True(t, meta.Updated)

	v, _ := h.Get("k")
	assert.Equal(t, 2, v)
}

func TestHashMapCollisionFlag(t *testing.T) {
	// Capacity 1 forces every key into bucket 0.
	var steps []step.Step
	h := NewHashMap(config.HashConfig{InitialCapacity: 1, LoadFactor: 100}, collectSteps(&steps))

	h.Set("a", 1)
	h.Set("b", 2)

	first := steps[0].Meta.(step.HashSetMeta)
	second := steps[1].Meta.(step.HashSetMeta)
	assert.False(t, first.Collision)
	assert.True(t, second.Collision, "second key lands in an occupied bucket")

	v, ok := h.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v, "chained entries must coexist")
}

// The seed scenario from the engine contract: capacity 4, threshold 0.75,
// four distinct keys trigger exactly one resize to capacity 8 and every key
// stays retrievable.
func TestHashMapResizeInvariant(t *testing.T) {
	var steps []step.Step
	h := NewHashMap(config.HashConfig{InitialCapacity: 4, LoadFactor: 0.75}, collectSteps(&steps))

	keys := []string{"one", "two", "three", "four"}
	for i, k := range keys {
		h.Set(k, i)
	}

	var resizes []step.ResizeMeta
	for _, s := range steps {
		if m, ok := s.Meta.(step.ResizeMeta); ok {
			resizes = append(resizes, m)
		}
	}
	require.Len(t, resizes, 1, "exactly one resize step")
	assert.Equal(t, 4, resizes[0].OldCapacity)
	assert.Equal(t, 8, resizes[0].NewCapacity)
	assert.Equal(t, 4, resizes[0].Rehashed)
	assert.Equal(t, 8, h.Capacity())

	for i, k := range keys {
		v, ok := h.Get(k)
		require.True(t, ok, "key %q lost in rehash", k)
		assert.Equal(t, i, v)
	}

	// The resize step is separate from, and directly follows, the
	// triggering set step.
	for i, s := range steps {
		if _, ok := s.Meta.(step.ResizeMeta); ok {
			require.Greater(t, i, 0)
			assert.IsType(t, step.HashSetMeta{}, steps[i-1].Meta)
		}
	}
}

func TestHashMapResizePreservesManyEntries(t *testing.T) {
	h := NewHashMap(config.HashConfig{InitialCapacity: 2, LoadFactor: 0.75}, nil)

	const n = 100
	for i := 0; i < n; i++ {
		h.Set(fmt.Sprintf("key-%d", i), i)
	}
	require.Equal(t, n, h.Size())

	for i := 0; i < n; i++ {
		v, ok := h.Get(fmt.Sprintf("key-%d", i))
		require.True(t, ok, "key-%d missing after repeated resizes", i)
		assert.Equal(t, i, v)
	}

	snap := h.Snapshot().(step.HashSnapshot)
	total := 0
	for _, bucket := range snap.Buckets {
		total += len(bucket)
	}
	assert.Equal(t, n, total)
}

func TestHashMapHashDeterministic(t *testing.T) {
	h := NewHashMap(config.HashConfig{InitialCapacity: 16, LoadFactor: 100}, nil)
	for _, key := range []string{"a", "hello", "collision", ""} {
		first := h.hash(key)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, h.hash(key), "hash(%q) must be stable", key)
		}
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, h.capacity)
	}
}

func TestHashMapClear(t *testing.T) {
	var steps []step.Step
	h := NewHashMap(config.HashConfig{InitialCapacity: 4, LoadFactor: 0.75}, collectSteps(&steps))
	h.Load(map[string]any{"a": 1, "b": 2})

	h.Clear()
	assert.Equal(t, 0, h.Size())
	assert.Equal(t, step.ClearMeta{Removed: 2}, steps[len(steps)-1].Meta)

	snap := h.Snapshot().(step.HashSnapshot)
	assert.Equal(t, 4, snap.Capacity, "clear keeps capacity")
}
