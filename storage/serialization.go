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

package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/quaesit/quaesit/core"
)

// vectorMUS serializes embedding components with the raw fixed-width
// encoding: dense floats gain nothing from varint.
var vectorMUS = ord.NewSliceSer[float32](raw.Float32)

// ProfileMUS is the hand-written serializer for Profile. Field order:
// Id (varint), Name, URL, Title, Text (length-prefixed strings),
// Vector (length-prefixed raw float32s), InsertedAt, UpdatedAt
// (raw int64 microseconds since epoch).
var ProfileMUS = profileMUS{}

type profileMUS struct{}

func (profileMUS) Marshal(v core.Profile, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Id), bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.URL, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += raw.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
	n += raw.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (profileMUS) Unmarshal(bs []byte) (v core.Profile, n int, err error) {
	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return v, n, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	v.Id = core.ID(id)

	for _, field := range []struct {
		name string
		dst  *string
	}{
		{"name", &v.Name},
		{"url", &v.URL},
		{"title", &v.Title},
		{"text", &v.Text},
	} {
		s, m, err := ord.String.Unmarshal(bs[n:])
		if err != nil {
			return v, n, fmt.Errorf("%w: %s: %w", ErrSerializationFailed, field.name, err)
		}
		*field.dst = s
		n += m
	}

	vector, m, err := vectorMUS.Unmarshal(bs[n:])
	if err != nil {
		return v, n, fmt.Errorf("%w: vector: %w", ErrSerializationFailed, err)
	}
	v.Vector = vector
	n += m

	insertedAt, m, err := raw.Int64.Unmarshal(bs[n:])
	if err != nil {
		return v, n, fmt.Errorf("%w: inserted_at: %w", ErrSerializationFailed, err)
	}
	n += m

	updatedAt, m, err := raw.Int64.Unmarshal(bs[n:])
	if err != nil {
		return v, n, fmt.Errorf("%w: updated_at: %w", ErrSerializationFailed, err)
	}
	n += m

	v.InsertedAt = time.UnixMicro(insertedAt).UTC()
	v.UpdatedAt = time.UnixMicro(updatedAt).UTC()
	return v, n, nil
}

func (profileMUS) Size(v core.Profile) (size int) {
	size = varint.Uint64.Size(uint64(v.Id))
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.URL)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Text)
	size += vectorMUS.Size(v.Vector)
	size += raw.Int64.Size(v.InsertedAt.UnixMicro())
	size += raw.Int64.Size(v.UpdatedAt.UnixMicro())
	return size
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalProfile serializes a Profile to bytes.
func MarshalProfile(profile *core.Profile) []byte {
	buf := make([]byte, ProfileMUS.Size(*profile))
	ProfileMUS.Marshal(*profile, buf)
	return buf
}

// UnmarshalProfile deserializes a Profile from bytes.
func UnmarshalProfile(data []byte) (*core.Profile, error) {
	profile, _, err := ProfileMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
