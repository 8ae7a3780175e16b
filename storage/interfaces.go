package storage

import (
	"context"

	"github.com/quaesit/quaesit/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ProfileRepository provides operations for managing directory profiles.
type ProfileRepository interface {
	Repository

	// AddProfiles adds one or more profiles to storage.
	// For profiles with ID=0, derives a content-based ID from the URL.
	// Sets InsertedAt and UpdatedAt timestamps.
	// Returns the profiles with IDs and timestamps populated.
	AddProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error)

	// UpdateProfiles updates existing profiles.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any profile doesn't exist.
	UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error)

	// DeleteProfiles removes profiles by their IDs.
	// Returns ErrNotFound if any profile doesn't exist.
	DeleteProfiles(ctx context.Context, ids ...core.ID) error

	// GetProfile retrieves a single profile by ID.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, id core.ID) (*core.Profile, error)

	// GetProfiles retrieves multiple profiles by their IDs.
	// Returns only the profiles that exist (no error for missing profiles).
	GetProfiles(ctx context.Context, ids ...core.ID) ([]*core.Profile, error)

	// FetchText retrieves the cached profile text for a single profile.
	// Returns ErrNotFound if the profile doesn't exist.
	FetchText(ctx context.Context, id core.ID) (string, error)

	// Universe returns the retrievable universe: every profile that has an
	// embedding vector, as (ID, vector) pairs. Profiles without vectors are
	// excluded.
	Universe(ctx context.Context) ([]core.VectorEntry, error)

	// FindByTerm finds profiles whose name or title contains the term,
	// compared case-insensitively. Returns up to limit matches in stable
	// key order.
	FindByTerm(ctx context.Context, term string, limit int) ([]*core.Profile, error)

	// Count returns the number of stored profiles.
	Count(ctx context.Context) (int, error)
}
