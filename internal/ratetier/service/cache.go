package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/golang/snappy"
	"github.com/railzwaylabs/commissions/internal/config"
	"github.com/railzwaylabs/commissions/internal/ratetier/domain"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix  = "rate_tiers:all:"
	cacheVersionKey = "rate_tiers:version"
)

func cacheKey(version int64) string {
	return cacheKeyPrefix + strconv.FormatInt(version, 10)
}

// Cache keeps the full tier list in redis as snappy compressed JSON. A nil
// client disables it.
//
// Entries are keyed by a version that Invalidate bumps. A reader that loaded
// the tiers before a write stores them under the old version, where no later
// Get looks.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, cfg config.Config) *Cache {
	return &Cache{client: client, ttl: cfg.Redis.RateTierTTL}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Get returns the cached tiers and the version they were looked up at. It
// reports false on a miss or when the cache is disabled; a miss should be
// filled with Set at the returned version.
func (c *Cache) Get(ctx context.Context) ([]domain.RateTier, int64, bool, error) {
	if !c.enabled() {
		return nil, 0, false, nil
	}
	version, err := c.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.client.Get(ctx, cacheKey(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, err
	}

	decoded, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, version, false, err
	}
	var tiers []domain.RateTier
	if err := json.Unmarshal(decoded, &tiers); err != nil {
		return nil, version, false, err
	}
	return tiers, version, true, nil
}

func (c *Cache) Set(ctx context.Context, version int64, tiers []domain.RateTier) error {
	if !c.enabled() {
		return nil
	}
	payload, err := json.Marshal(tiers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(version), snappy.Encode(nil, payload), c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	next, err := c.client.Incr(ctx, cacheVersionKey).Result()
	if err != nil {
		return err
	}
	return c.client.Del(ctx, cacheKey(next-1)).Err()
}
