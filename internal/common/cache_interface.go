package common

import (
	"encoding/json"
	"time"
)

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Flush drops every entry owned by this cache.
	Flush()

	// Close closes any underlying connections (for Redis, etc.)
	Close() error

	// Name identifies the backend in health output.
	Name() string
}

// DecodeCached turns a cached value back into T. The in-memory cache hands back
// the stored value itself; Redis hands back decoded JSON, which is re-marshalled.
func DecodeCached[T any](val interface{}) (T, bool) {
	var out T
	if typed, ok := val.(T); ok {
		return typed, true
	}
	if typed, ok := val.(*T); ok && typed != nil {
		return *typed, true
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}
