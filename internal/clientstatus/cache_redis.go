package clientstatus

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"backoffice/internal/verification"
)

const redisKeyPrefix = "clientstatus:"

// RedisCache shares statuses across gateway instances so an invalidation on
// one instance is seen by all of them.
type RedisCache struct {
	client redis.UniversalClient
}

func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func redisKey(clientID int64) string {
	return redisKeyPrefix + strconv.FormatInt(clientID, 10)
}

func (c *RedisCache) Get(ctx context.Context, clientID int64) (verification.Status, bool, error) {
	raw, err := c.client.Get(ctx, redisKey(clientID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	status, err := verification.ParseStatus(raw)
	if err != nil {
		return "", false, nil
	}
	return status, true, nil
}

func (c *RedisCache) Set(ctx context.Context, clientID int64, status verification.Status, ttl time.Duration) error {
	return c.client.Set(ctx, redisKey(clientID), string(status), ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, clientID int64) error {
	return c.client.Del(ctx, redisKey(clientID)).Err()
}
