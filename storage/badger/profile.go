// Copyright 2026 Quaesit Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/quaesit/quaesit/core"
	"github.com/quaesit/quaesit/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) (*ProfileRepository, error) {
	return &ProfileRepository{backend: backend}, nil
}

// Close is a no-op; the underlying backend owns the database handle.
func (r *ProfileRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ProfileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddProfiles adds one or more profiles to storage.
// Profiles with ID=0 get a content-based ID derived from their URL, so
// re-seeding the same source is idempotent.
func (r *ProfileRepository) AddProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			if err := core.ValidateProfile(profile); err != nil {
				return err
			}

			if profile.Id == 0 {
				profile.Id = core.IDFromContent(profile.URL)
			}

			profile.InsertedAt = time.Now().UTC()
			profile.UpdatedAt = profile.InsertedAt

			key := makeProfileKey(profile.Id)
			if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return profiles, err
}

// UpdateProfiles updates existing profiles.
func (r *ProfileRepository) UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			key := makeProfileKey(profile.Id)

			old, err := r.readProfile(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			profile.InsertedAt = old.InsertedAt
			profile.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return profiles, err
}

// DeleteProfiles removes profiles by their IDs.
func (r *ProfileRepository) DeleteProfiles(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeProfileKey(id)

			profile, err := r.readProfile(tx, key)
			if err != nil {
				return err
			}
			if profile == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetProfile retrieves a single profile by ID.
func (r *ProfileRepository) GetProfile(ctx context.Context, id core.ID) (*core.Profile, error) {
	var result *core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readProfile(tx, makeProfileKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetProfiles retrieves multiple profiles by their IDs.
// Missing profiles are skipped without error.
func (r *ProfileRepository) GetProfiles(ctx context.Context, ids ...core.ID) ([]*core.Profile, error) {
	var result []*core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			profile, err := r.readProfile(tx, makeProfileKey(id))
			if err != nil {
				return err
			}
			if profile != nil {
				result = append(result, profile)
			}
		}
		return nil
	}, false)
	return result, err
}

// FetchText retrieves the cached profile text for a single profile.
func (r *ProfileRepository) FetchText(ctx context.Context, id core.ID) (string, error) {
	profile, err := r.GetProfile(ctx, id)
	if err != nil {
		return "", err
	}
	return profile.Text, nil
}

// Universe returns every profile that has an embedding, as (ID, vector)
// pairs ordered by ascending ID.
func (r *ProfileRepository) Universe(ctx context.Context) ([]core.VectorEntry, error) {
	var entries []core.VectorEntry

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = profileKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var profile *core.Profile
			err := iter.Item().Value(func(val []byte) error {
				var err error
				profile, err = storage.UnmarshalProfile(val)
				return err
			})
			if err != nil {
				return err
			}

			if profile == nil || len(profile.Vector) == 0 {
				continue
			}

			entries = append(entries, core.VectorEntry{
				ProfileId: profile.Id,
				Vector:    profile.Vector,
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByTerm finds profiles whose name or title contains the term,
// compared case-insensitively. A full scan: the directory is small and
// fixed, so no name index is kept.
func (r *ProfileRepository) FindByTerm(ctx context.Context, term string, limit int) ([]*core.Profile, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || limit < 1 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = profileKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(results) < limit; iter.Next() {
			var profile *core.Profile
			err := iter.Item().Value(func(val []byte) error {
				var err error
				profile, err = storage.UnmarshalProfile(val)
				return err
			})
			if err != nil {
				return err
			}
			if profile == nil {
				continue
			}

			if strings.Contains(strings.ToLower(profile.Name), term) ||
				strings.Contains(strings.ToLower(profile.Title), term) {
				results = append(results, profile)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// Count returns the number of stored profiles.
func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = profileKeyPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readProfile reads and deserializes a profile by key.
// Returns nil (not an error) if the key doesn't exist.
func (r *ProfileRepository) readProfile(tx *badger.Txn, key []byte) (*core.Profile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.Profile
	err = item.Value(func(val []byte) error {
		var err error
		profile, err = storage.UnmarshalProfile(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
