package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateProfile(t *testing.T) {
	valid := func() *Profile {
		return &Profile{
			Name:       "Jane Doe",
			URL:        "https://example.com/people/jane-doe",
			Title:      "Partner",
			Text:       "Jane advises media companies on licensing disputes.",
			InsertedAt: time.Now().UTC(),
		}
	}

	t.Run("valid profile", func(t *testing.T) {
		assert.NoError(t, ValidateProfile(valid()))
	})

	t.Run("nil profile", func(t *testing.T) {
		err := ValidateProfile(nil)
		assert.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("empty name", func(t *testing.T) {
		p := valid()
		p.Name = ""
		err := ValidateProfile(p)
		assert.ErrorIs(t, err, ErrInvalidProfile)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("empty url", func(t *testing.T) {
		p := valid()
		p.URL = ""
		err := ValidateProfile(p)
		assert.ErrorIs(t, err, ErrEmptyURL)
	})

	t.Run("future timestamp", func(t *testing.T) {
		p := valid()
		p.InsertedAt = time.Now().Add(time.Hour)
		err := ValidateProfile(p)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("zero timestamp allowed", func(t *testing.T) {
		p := valid()
		p.InsertedAt = time.Time{}
		assert.NoError(t, ValidateProfile(p))
	})

	t.Run("missing vector and text allowed", func(t *testing.T) {
		p := valid()
		p.Text = ""
		p.Vector = nil
		assert.NoError(t, ValidateProfile(p))
	})
}
