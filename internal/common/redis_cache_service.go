package common

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"aeroportal/flightops/internal/logging"

	"github.com/redis/go-redis/v9"
)

// RedisCacheService implements CacheInterface using Redis. Values are stored as JSON
// under a key prefix, so Get returns generic JSON values; use DecodeCached to type them.
type RedisCacheService struct {
	client *redis.Client
	prefix string
	ctx    context.Context
}

var _ CacheInterface = (*RedisCacheService)(nil)

func NewRedisCacheService(client *redis.Client, prefix string) *RedisCacheService {
	return &RedisCacheService{
		client: client,
		prefix: prefix,
		ctx:    context.Background(),
	}
}

func (r *RedisCacheService) key(k string) string { return r.prefix + k }

func (r *RedisCacheService) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn("Redis cache: failed to marshal value", "key", key, "error", err)
		return
	}

	if err := r.client.Set(r.ctx, r.key(key), data, duration).Err(); err != nil {
		logging.Warn("Redis cache: failed to set key", "key", key, "error", err)
	}
}

func (r *RedisCacheService) Get(key string) (interface{}, bool) {
	data, err := r.client.Get(r.ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logging.Warn("Redis cache: failed to get key", "key", key, "error", err)
		return nil, false
	}

	var result interface{}
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		logging.Warn("Redis cache: failed to unmarshal value", "key", key, "error", err)
		return nil, false
	}

	return result, true
}

func (r *RedisCacheService) Delete(key string) {
	if err := r.client.Del(r.ctx, r.key(key)).Err(); err != nil {
		logging.Warn("Redis cache: failed to delete key", "key", key, "error", err)
	}
}

func (r *RedisCacheService) GetOrSet(
	key string,
	duration time.Duration,
	loader func() (any, error),
) (interface{}, error) {
	if val, found := r.Get(key); found {
		return val, nil
	}

	val, err := loader()
	if err != nil {
		return nil, err
	}

	r.Set(key, val, duration)
	return val, nil
}

// Flush deletes every key under the service prefix.
func (r *RedisCacheService) Flush() {
	iter := r.client.Scan(r.ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(r.ctx) {
		if err := r.client.Del(r.ctx, iter.Val()).Err(); err != nil {
			logging.Warn("Redis cache: failed to delete key", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		logging.Warn("Redis cache: flush scan failed", "prefix", r.prefix, "error", err)
	}
}

func (r *RedisCacheService) Close() error {
	return r.client.Close()
}

func (r *RedisCacheService) Name() string { return "redis" }

// Ping reports whether Redis is reachable.
func (r *RedisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
