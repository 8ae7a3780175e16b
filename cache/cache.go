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

package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/quaesit/quaesit/core"
)

// Key identifies a cached result set. Query must already be in canonical
// form (core.NormalizeQuery); Scope separates result sets that would
// otherwise collide, such as different directories sharing one process.
type Key struct {
	Query string
	Scope string
}

// NewKey builds a cache key from a raw query and scope, normalizing the
// query so that trivially different spellings share an entry.
func NewKey(query, scope string) Key {
	return Key{Query: core.NormalizeQuery(query), Scope: scope}
}

type entry struct {
	key       Key
	results   []core.Result
	expiresAt time.Time
}

// ResultCache is a fixed-capacity LRU cache of query results with per-entry
// TTL. Expired entries are treated as absent and evicted lazily on access.
// All methods are safe for concurrent use.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front = most recently used
	items    map[Key]*list.Element

	hits   uint64
	misses uint64

	now func() time.Time // test hook
}

// New creates a ResultCache holding at most capacity entries, each valid
// for ttl after insertion.
func New(capacity int, ttl time.Duration) (*ResultCache, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return &ResultCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[Key]*list.Element),
		now:      time.Now,
	}, nil
}

// Get returns the cached results for key, or ok=false on a miss. An entry
// past its TTL counts as a miss and is removed. A hit marks the entry most
// recently used.
func (c *ResultCache) Get(key Key) ([]core.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}

	ent := elem.Value.(*entry)
	if c.now().After(ent.expiresAt) {
		c.removeLocked(elem)
		c.misses++
		return nil, false
	}

	c.order.MoveToFront(elem)
	c.hits++
	return ent.results, true
}

// Set stores results under key, replacing any existing entry and resetting
// its TTL. At capacity the least recently used entry is evicted.
func (c *ResultCache) Set(key Key, results []core.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry)
		ent.results = results
		ent.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeLocked(oldest)
		}
	}

	elem := c.order.PushFront(&entry{key: key, results: results, expiresAt: expiresAt})
	c.items[key] = elem
}

// Invalidate removes the entry for key if present.
func (c *ResultCache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeLocked(elem)
	}
}

// Purge removes every entry. Counters are preserved.
func (c *ResultCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[Key]*list.Element)
}

// Len returns the number of entries currently held, including any that
// have expired but not yet been evicted.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats reports hit and miss counts since creation.
func (c *ResultCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *ResultCache) removeLocked(elem *list.Element) {
	ent := elem.Value.(*entry)
	c.order.Remove(elem)
	delete(c.items, ent.key)
}
