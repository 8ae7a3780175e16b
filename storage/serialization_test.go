package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaesit/quaesit/core"
)

func TestProfileRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	profile := &core.Profile{
		Id:         core.IDFromContent("https://example.com/people/jane-doe"),
		Name:       "Jane Doe",
		URL:        "https://example.com/people/jane-doe",
		Title:      "Partner, Media & Entertainment",
		Text:       "Represents broadcasters and streaming platforms in carriage disputes.",
		Vector:     []float32{0.25, -0.5, 0.125, 1},
		InsertedAt: now,
		UpdatedAt:  now.Add(time.Hour),
	}

	data := MarshalProfile(profile)
	got, err := UnmarshalProfile(data)
	require.NoError(t, err)

	assert.Equal(t, profile.Id, got.Id)
	assert.Equal(t, profile.Name, got.Name)
	assert.Equal(t, profile.URL, got.URL)
	assert.Equal(t, profile.Title, got.Title)
	assert.Equal(t, profile.Text, got.Text)
	assert.Equal(t, profile.Vector, got.Vector)
	assert.True(t, profile.InsertedAt.Equal(got.InsertedAt))
	assert.True(t, profile.UpdatedAt.Equal(got.UpdatedAt))
}

func TestProfileRoundTrip_EmptyFields(t *testing.T) {
	profile := &core.Profile{
		Id:   42,
		Name: "Minimal",
		URL:  "https://example.com/minimal",
	}

	got, err := UnmarshalProfile(MarshalProfile(profile))
	require.NoError(t, err)
	assert.Equal(t, profile.Name, got.Name)
	assert.Empty(t, got.Text)
	assert.Empty(t, got.Vector)
}

func TestUnmarshalProfile_Truncated(t *testing.T) {
	profile := &core.Profile{
		Id:     7,
		Name:   "Jane Doe",
		URL:    "https://example.com/jane",
		Vector: []float32{1, 2, 3},
	}

	data := MarshalProfile(profile)
	_, err := UnmarshalProfile(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestIDRoundTrip(t *testing.T) {
	for _, id := range []core.ID{0, 1, 127, 128, 1 << 40, 1<<64 - 1} {
		got, err := UnmarshalID(MarshalID(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}
