package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	appErrors "github.com/sikt-nva/fs-courses-api/pkg/errors"
)

// MemoryCacheRepository keeps JSON payloads in process memory. Entries are
// not shared between instances.
type MemoryCacheRepository struct {
	store *gocache.Cache
}

// NewMemoryCacheRepository constructs an in-process cache that evicts expired
// entries every cleanupInterval.
func NewMemoryCacheRepository(defaultTTL, cleanupInterval time.Duration) *MemoryCacheRepository {
	return &MemoryCacheRepository{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves and unmarshals the cached value into dest.
func (r *MemoryCacheRepository) Get(_ context.Context, key string, dest interface{}) error {
	raw, found := r.store.Get(cacheNamespace + key)
	if !found {
		return appErrors.ErrCacheMiss
	}
	payload, ok := raw.([]byte)
	if !ok {
		r.store.Delete(cacheNamespace + key)
		return appErrors.ErrCacheMiss
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		r.store.Delete(cacheNamespace + key)
		return appErrors.ErrCacheMiss
	}
	return nil
}

// Set marshals value and stores it with the given TTL.
func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	r.store.Set(cacheNamespace+key, payload, ttl)
	return nil
}
