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

import "errors"

// Domain validation errors
var (
	// ErrInvalidProfile indicates a Profile failed validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("profile name cannot be empty")

	// ErrEmptyURL indicates the URL field is empty.
	ErrEmptyURL = errors.New("profile url cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
