package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.ReferenceCache = (*ReferenceCache)(nil)

const (
	// referenceKey holds the serialized dictionary
	referenceKey = "firtag:reference"

	// defaultReferenceTTL bounds staleness; a rebuilt dictionary overwrites
	// the key well before this expires
	defaultReferenceTTL = 24 * time.Hour
)

// ReferenceCache implements driven.ReferenceCache using Redis.
// The dictionary is small (a few hundred sections), so it is stored as one
// JSON value rather than a hash per section.
type ReferenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReferenceCache creates a new Redis-backed ReferenceCache
func NewReferenceCache(client *redis.Client) *ReferenceCache {
	return &ReferenceCache{client: client, ttl: defaultReferenceTTL}
}

// WithTTL overrides the cache expiry
func (c *ReferenceCache) WithTTL(ttl time.Duration) *ReferenceCache {
	c.ttl = ttl
	return c
}

// Save stores the dictionary, replacing any previous version
func (c *ReferenceCache) Save(ctx context.Context, dict *domain.ReferenceDictionary) error {
	data, err := json.Marshal(dict)
	if err != nil {
		return fmt.Errorf("failed to marshal reference dictionary: %w", err)
	}

	if err := c.client.Set(ctx, referenceKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save reference dictionary: %w", err)
	}
	return nil
}

// Load retrieves the cached dictionary
func (c *ReferenceCache) Load(ctx context.Context) (*domain.ReferenceDictionary, error) {
	data, err := c.client.Get(ctx, referenceKey).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reference dictionary: %w", err)
	}

	dict := domain.NewReferenceDictionary()
	if err := json.Unmarshal(data, dict); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reference dictionary: %w", err)
	}
	return dict, nil
}

// Invalidate drops the cached dictionary
func (c *ReferenceCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, referenceKey).Err()
}
