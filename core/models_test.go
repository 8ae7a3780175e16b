package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("https://example.com/people/jane-doe")
		b := IDFromContent("https://example.com/people/jane-doe")
		assert.Equal(t, a, b)
	})

	t.Run("different content different id", func(t *testing.T) {
		a := IDFromContent("https://example.com/people/jane-doe")
		b := IDFromContent("https://example.com/people/john-doe")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		id := IDFromContent("")
		assert.NotZero(t, id)
	})
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Lawyers Named David", "lawyers named david"},
		{"collapses whitespace", "tax   lawyers\tin  london", "tax lawyers in london"},
		{"trims edges", "  partners  ", "partners"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeQuery(tt.input))
		})
	}
}

func TestQueryLabel(t *testing.T) {
	t.Run("string round trip", func(t *testing.T) {
		for _, label := range []QueryLabel{LabelSimple, LabelComplex, LabelUnknown} {
			assert.Equal(t, label, ParseQueryLabel(label.String()))
		}
	})

	t.Run("parse is case insensitive", func(t *testing.T) {
		assert.Equal(t, LabelSimple, ParseQueryLabel(" Simple "))
		assert.Equal(t, LabelComplex, ParseQueryLabel("COMPLEX"))
	})

	t.Run("unrecognized maps to unknown", func(t *testing.T) {
		assert.Equal(t, LabelUnknown, ParseQueryLabel("maybe"))
		assert.Equal(t, LabelUnknown, ParseQueryLabel(""))
	})
}
