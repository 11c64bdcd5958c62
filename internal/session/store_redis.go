package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"backoffice/pkg/platform/sentinel"
)

const sessionKeyPrefix = "session:"

// RedisStore shares session keys across gateway instances.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(sid string, key Key) string {
	return sessionKeyPrefix + sid + ":" + string(key)
}

func (s *RedisStore) Set(ctx context.Context, sid string, key Key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, redisKey(sid, key), value, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sid string, key Key) (string, error) {
	val, err := s.client.Get(ctx, redisKey(sid, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Remove(ctx context.Context, sid string, key Key) error {
	return s.client.Del(ctx, redisKey(sid, key)).Err()
}

// Clear deletes the three keys in one round trip.
func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	keys := make([]string, 0, len(Keys()))
	for _, k := range Keys() {
		keys = append(keys, redisKey(sid, k))
	}
	return s.client.Del(ctx, keys...).Err()
}
