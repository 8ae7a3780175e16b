// Package cache provides a fixed-capacity LRU cache with per-entry TTL for
// answered queries, keyed by normalized query text and scope.
package cache
