package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/userorders-backend/internal/models"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL applies when the configured TTL is not positive
	DefaultCacheTTL = 10 * time.Minute
)

// UserCache holds password-free user documents keyed by userId.
type UserCache interface {
	Get(ctx context.Context, userID string) (*models.User, bool, error)
	Set(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID string) error
}

// RedisUserCache stores users as JSON. The password field is tagged
// json:"-", so hashes never reach Redis.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisUserCache(client *redis.Client, ttl time.Duration) *RedisUserCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisUserCache{client: client, ttl: ttl}
}

func (c *RedisUserCache) Get(ctx context.Context, userID string) (*models.User, bool, error) {
	val, err := c.client.Get(ctx, CacheKey("user", userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var user models.User
	if err := json.Unmarshal(val, &user); err != nil {
		return nil, false, err
	}
	user.Normalize()
	return &user, true, nil
}

func (c *RedisUserCache) Set(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, CacheKey("user", user.UserID), data, c.ttl).Err()
}

func (c *RedisUserCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, CacheKey("user", userID)).Err()
}

// CacheKey generates a cache key for a specific resource
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s%s:%s", CacheKeyPrefix, resource, identifier)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*models.User, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, *models.User) error                { return nil }
func (noopCache) Delete(context.Context, string) error                   { return nil }
