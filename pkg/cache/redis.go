package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisStoreName = "redis"

// RedisClient is the subset of the go-redis client used by RedisStore.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps entries in redis under "<namespace>:<key>".
type RedisStore struct {
	client    RedisClient
	namespace string
}

func NewRedisStore(client RedisClient, namespace string) *RedisStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisStore{client: client, namespace: namespace}
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if expiration < 0 {
		expiration = 0
	}
	if err := s.client.Set(ctx, NamespacedKey(s.namespace, key), value, expiration).Err(); err != nil {
		return NewCacheError(redisStoreName, "set", key, err, true)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, NamespacedKey(s.namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewCacheError(redisStoreName, "get", key, err, true)
	}
	return val, nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, NamespacedKey(s.namespace, key)).Result()
	if err != nil {
		return false, NewCacheError(redisStoreName, "exists", key, err, true)
	}
	return count > 0, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	err := s.client.Del(ctx, NamespacedKey(s.namespace, key)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return NewCacheError(redisStoreName, "delete", key, err, true)
	}
	return nil
}
