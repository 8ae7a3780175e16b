package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T, opts ...Option) *Extractor {
	t.Helper()
	e, err := NewExtractor(opts...)
	require.NoError(t, err)
	return e
}

func TestExtract_Vocabulary(t *testing.T) {
	e := newTestExtractor(t)

	t.Run("industry terms", func(t *testing.T) {
		kws := e.Extract("lawyers who worked on a case for a TV network")
		canon := Canonicals(kws)
		assert.Contains(t, canon, "tv")
		assert.Contains(t, canon, "network")
	})

	t.Run("company names keep display case", func(t *testing.T) {
		kws := e.Extract("worked with CNN on media deals")
		require.NotEmpty(t, kws)

		var cnn *Keyword
		for i := range kws {
			if kws[i].Canonical == "cnn" {
				cnn = &kws[i]
			}
		}
		require.NotNil(t, cnn)
		assert.Equal(t, "CNN", cnn.Display)
	})

	t.Run("multi word vocabulary", func(t *testing.T) {
		kws := e.Extract("advised Goldman Sachs on a public offering")
		canon := Canonicals(kws)
		assert.Contains(t, canon, "goldman sachs")
		assert.Contains(t, canon, "public offering")
	})

	t.Run("no substring hits inside words", func(t *testing.T) {
		kws := e.Extract("clients based in Latvia")
		assert.NotContains(t, Canonicals(kws), "tv")
	})

	t.Run("display survives multibyte case folding", func(t *testing.T) {
		// "İ" lowercases to a different byte length, so byte offsets in
		// the lowered query drift against the original.
		kws := e.Extract("İstanbul counsel with Netflix experience")

		var netflix *Keyword
		for i := range kws {
			if kws[i].Canonical == "netflix" {
				netflix = &kws[i]
			}
		}
		require.NotNil(t, netflix)
		assert.Equal(t, "Netflix", netflix.Display)
	})
}

func TestExtract_SyntacticCues(t *testing.T) {
	e := newTestExtractor(t)

	t.Run("quoted phrases", func(t *testing.T) {
		kws := e.Extract(`experience with "structured settlements" in Europe`)
		assert.Contains(t, Canonicals(kws), "structured settlements")
	})

	t.Run("capitalized multi word entities", func(t *testing.T) {
		kws := e.Extract("represented Acme Holdings in arbitration")
		assert.Contains(t, Canonicals(kws), "acme holdings")
	})

	t.Run("single capitalized word is not an entity", func(t *testing.T) {
		kws := e.Extract("Clients in arbitration")
		assert.NotContains(t, Canonicals(kws), "clients")
	})
}

func TestExtract_GenericQuery(t *testing.T) {
	e := newTestExtractor(t)
	assert.Empty(t, e.Extract("experienced people"))
	assert.Empty(t, e.Extract(""))
}

func TestExtract_Deduplicates(t *testing.T) {
	e := newTestExtractor(t)
	kws := e.Extract("media deals and media litigation in media markets")

	count := 0
	for _, kw := range kws {
		if kw.Canonical == "media" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtract_OrderIsStable(t *testing.T) {
	e := newTestExtractor(t)
	query := "streaming disputes with Netflix over crypto payments"

	first := Canonicals(e.Extract(query))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Canonicals(e.Extract(query)))
	}

	// Gazetteer hits come back in query order.
	require.True(t, len(first) >= 3)
	idx := func(s string) int {
		for i, v := range first {
			if v == s {
				return i
			}
		}
		return -1
	}
	assert.Less(t, idx("streaming"), idx("netflix"))
	assert.Less(t, idx("netflix"), idx("crypto"))
}

func TestExtract_CustomVocabulary(t *testing.T) {
	e := newTestExtractor(t, WithVocabulary([]string{"maritime", "salvage rights"}))

	kws := e.Extract("specialists in salvage rights and maritime law")
	canon := Canonicals(kws)
	assert.Contains(t, canon, "maritime")
	assert.Contains(t, canon, "salvage rights")
	// Default vocabulary should be gone.
	kws = e.Extract("worked with Google")
	assert.NotContains(t, Canonicals(kws), "google")
}

func TestExtract_EmptyVocabulary(t *testing.T) {
	e := newTestExtractor(t, WithVocabulary(nil))
	// Syntactic cues still work without a gazetteer.
	kws := e.Extract(`deals for "Blue Harbor Partners"`)
	assert.Contains(t, Canonicals(kws), "blue harbor partners")
}
