package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/libroshare/backend/internal/models"
)

// ProfileCacheTTL bounds staleness of cached public profiles.
const ProfileCacheTTL = 60 * time.Second

// NewRedisClient creates and pings a Redis client with optional
// password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// ProfileCache caches sanitized public profiles in Redis. It only ever
// holds profiles with the password hash already stripped.
type ProfileCache struct {
	rdb *redis.Client
}

func NewProfileCache(rdb *redis.Client) *ProfileCache {
	return &ProfileCache{rdb: rdb}
}

// Get returns the cached profile, or (nil, nil) on a miss.
func (c *ProfileCache) Get(ctx context.Context, id string) (*models.Profile, error) {
	raw, err := c.rdb.Get(ctx, "profile:"+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Set stores a profile under a short TTL.
func (c *ProfileCache) Set(ctx context.Context, id string, p *models.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, "profile:"+id, raw, ProfileCacheTTL).Err()
}

// Invalidate drops a cached profile after an update or delete.
func (c *ProfileCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, "profile:"+id).Err()
}
