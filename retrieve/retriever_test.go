package retrieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaesit/quaesit/core"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.6, 0.8}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-6)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{0, 1}
		assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-6)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		a := []float32{1, 2}
		b := []float32{-1, -2}
		assert.InDelta(t, -1.0, CosineSimilarity(a, b), 1e-6)
	})

	t.Run("mismatched lengths score zero", func(t *testing.T) {
		assert.Equal(t, float32(0), CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	})

	t.Run("zero vector scores zero", func(t *testing.T) {
		assert.Equal(t, float32(0), CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
	})
}

func TestNormalizeVector(t *testing.T) {
	t.Run("unit length result", func(t *testing.T) {
		n := NormalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, float64(n[0]), 1e-6)
		assert.InDelta(t, 0.8, float64(n[1]), 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		n := NormalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, n)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		v := []float32{3, 4}
		NormalizeVector(v)
		assert.Equal(t, []float32{3, 4}, v)
	})
}

func entry(id core.ID, vec ...float32) core.VectorEntry {
	return core.VectorEntry{ProfileId: id, Vector: vec}
}

func TestTopK(t *testing.T) {
	query := []float32{1, 0}
	universe := []core.VectorEntry{
		entry(1, 0, 1),     // orthogonal, score 0
		entry(2, 1, 0),     // identical, score 1
		entry(3, 0.7, 0.7), // diagonal, score ~0.707
		entry(4, -1, 0),    // opposite, score -1
	}

	t.Run("orders by descending score", func(t *testing.T) {
		got := TopK(query, universe, 4)
		require.Len(t, got, 4)
		ids := []core.ID{got[0].ProfileId, got[1].ProfileId, got[2].ProfileId, got[3].ProfileId}
		assert.Equal(t, []core.ID{2, 3, 1, 4}, ids)
	})

	t.Run("truncates to k", func(t *testing.T) {
		got := TopK(query, universe, 2)
		require.Len(t, got, 2)
		assert.Equal(t, core.ID(2), got[0].ProfileId)
		assert.Equal(t, core.ID(3), got[1].ProfileId)
	})

	t.Run("returns fewer when universe is smaller", func(t *testing.T) {
		got := TopK(query, universe[:1], 10)
		assert.Len(t, got, 1)
	})

	t.Run("non-positive k yields nil", func(t *testing.T) {
		assert.Nil(t, TopK(query, universe, 0))
		assert.Nil(t, TopK(query, universe, -1))
	})

	t.Run("empty universe yields nil", func(t *testing.T) {
		assert.Nil(t, TopK(query, nil, 5))
	})

	t.Run("ties break by ascending id", func(t *testing.T) {
		tied := []core.VectorEntry{
			entry(9, 1, 0),
			entry(3, 1, 0),
			entry(7, 1, 0),
		}
		got := TopK(query, tied, 3)
		require.Len(t, got, 3)
		assert.Equal(t, core.ID(3), got[0].ProfileId)
		assert.Equal(t, core.ID(7), got[1].ProfileId)
		assert.Equal(t, core.ID(9), got[2].ProfileId)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		first := TopK(query, universe, 3)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, TopK(query, universe, 3))
		}
	})
}

func TestDefaultKPolicy(t *testing.T) {
	assert.Equal(t, 50, DefaultKPolicy(0))
	assert.Equal(t, 40, DefaultKPolicy(1))
	assert.Equal(t, 40, DefaultKPolicy(2))
	assert.Equal(t, 25, DefaultKPolicy(3))
	assert.Equal(t, 25, DefaultKPolicy(8))

	t.Run("monotonic non-increasing", func(t *testing.T) {
		prev := DefaultKPolicy(0)
		for n := 1; n <= 10; n++ {
			k := DefaultKPolicy(n)
			assert.LessOrEqual(t, k, prev)
			prev = k
		}
	})
}
