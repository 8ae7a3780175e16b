package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaesit/quaesit/core"
)

func results(ids ...core.ID) []core.Result {
	out := make([]core.Result, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.Result{ProfileId: id})
	}
	return out
}

func TestNew_Validation(t *testing.T) {
	_, err := New(0, time.Minute)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = New(10, 0)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	c, err := New(10, time.Minute)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestNewKey_NormalizesQuery(t *testing.T) {
	a := NewKey("  Lawyers   Named DAVID ", "dir1")
	b := NewKey("lawyers named david", "dir1")
	assert.Equal(t, a, b)

	c := NewKey("lawyers named david", "dir2")
	assert.NotEqual(t, a, c)
}

func TestCache_GetSet(t *testing.T) {
	c, err := New(4, time.Minute)
	require.NoError(t, err)

	key := NewKey("merger lawyers", "")
	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, results(1, 2))
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, results(1, 2), got)

	// Overwrite replaces the value.
	c.Set(key, results(3))
	got, ok = c.Get(key)
	require.True(t, ok)
	assert.Equal(t, results(3), got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_TTLExpiry(t *testing.T) {
	c, err := New(4, time.Minute)
	require.NoError(t, err)

	clock := time.Now()
	c.now = func() time.Time { return clock }

	key := NewKey("ipo lawyers", "")
	c.Set(key, results(1))

	clock = clock.Add(59 * time.Second)
	_, ok := c.Get(key)
	assert.True(t, ok)

	clock = clock.Add(2 * time.Second)
	_, ok = c.Get(key)
	assert.False(t, ok)
	assert.Zero(t, c.Len(), "expired entry should be evicted on access")

	// Re-setting an expired key resets the TTL.
	c.Set(key, results(2))
	clock = clock.Add(30 * time.Second)
	_, ok = c.Get(key)
	assert.True(t, ok)
}

func TestCache_LRUEviction(t *testing.T) {
	c, err := New(2, time.Minute)
	require.NoError(t, err)

	k1 := NewKey("one", "")
	k2 := NewKey("two", "")
	k3 := NewKey("three", "")

	c.Set(k1, results(1))
	c.Set(k2, results(2))

	// Touch k1 so k2 becomes least recently used.
	_, ok := c.Get(k1)
	require.True(t, ok)

	c.Set(k3, results(3))
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(k2)
	assert.False(t, ok, "least recently used entry should have been evicted")
	_, ok = c.Get(k1)
	assert.True(t, ok)
	_, ok = c.Get(k3)
	assert.True(t, ok)
}

func TestCache_SetRefreshesRecency(t *testing.T) {
	c, err := New(2, time.Minute)
	require.NoError(t, err)

	k1 := NewKey("one", "")
	k2 := NewKey("two", "")
	k3 := NewKey("three", "")

	c.Set(k1, results(1))
	c.Set(k2, results(2))
	c.Set(k1, results(1)) // k2 is now LRU
	c.Set(k3, results(3))

	_, ok := c.Get(k2)
	assert.False(t, ok)
	_, ok = c.Get(k1)
	assert.True(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	c, err := New(4, time.Minute)
	require.NoError(t, err)

	key := NewKey("query", "")
	c.Set(key, results(1))
	c.Invalidate(key)

	_, ok := c.Get(key)
	assert.False(t, ok)

	// Invalidating a missing key is a no-op.
	c.Invalidate(NewKey("absent", ""))
}

func TestCache_Purge(t *testing.T) {
	c, err := New(4, time.Minute)
	require.NoError(t, err)

	c.Set(NewKey("a", ""), results(1))
	c.Set(NewKey("b", ""), results(2))
	c.Purge()

	assert.Zero(t, c.Len())
	_, ok := c.Get(NewKey("a", ""))
	assert.False(t, ok)
}

func TestCache_Stats(t *testing.T) {
	c, err := New(4, time.Minute)
	require.NoError(t, err)

	key := NewKey("q", "")
	c.Get(key)
	c.Set(key, results(1))
	c.Get(key)
	c.Get(key)

	hits, misses := c.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c, err := New(32, time.Minute)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := NewKey(fmt.Sprintf("query %d", (g+i)%40), "")
				if i%3 == 0 {
					c.Set(key, results(core.ID(i)))
				} else {
					c.Get(key)
				}
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 32)
}
