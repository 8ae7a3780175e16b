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


package core

import (
	"fmt"
	"time"
)

// ValidateProfile validates a Profile according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - URL must not be empty
//   - InsertedAt must not be in the future
//
// NOT validated (populated later):
//   - Vector (can be empty until the profile text is embedded)
//   - Text (a profile may exist before its content is cached)
//   - ID (computed from the URL on insert)
func ValidateProfile(profile *Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyName)
	}

	if profile.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyURL)
	}

	if !profile.InsertedAt.IsZero() && !IsValidTimestamp(profile.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
