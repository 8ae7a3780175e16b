package cache

import "errors"

var (
	// ErrInvalidCapacity is returned for a capacity below 1.
	ErrInvalidCapacity = errors.New("capacity must be at least 1")

	// ErrInvalidTTL is returned for a non-positive TTL.
	ErrInvalidTTL = errors.New("ttl must be positive")
)
