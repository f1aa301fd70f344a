package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filippkowalski/heywish/internal/domain"
)

// DefaultSnapshotTTL bounds how stale a public wishlist view can get when
// an invalidation is lost. Mutations invalidate explicitly; the TTL is the
// backstop.
const DefaultSnapshotTTL = 5 * time.Minute

// Cache stores unmasked public wishlist snapshots keyed by share token.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached snapshot for a token, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, token string) (*domain.PublicSnapshot, error) {
	data, err := c.client.Get(ctx, SnapshotKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap domain.PublicSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt entry behaves like a miss; the next Save overwrites it.
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Save stores a snapshot under the token's key with the cache TTL.
func (c *Cache) Save(ctx context.Context, token string, snap *domain.PublicSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, SnapshotKey(token), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for a token.
func (c *Cache) Invalidate(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, SnapshotKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshot: %w", err)
	}
	return nil
}
