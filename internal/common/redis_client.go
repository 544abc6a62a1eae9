package common

import (
	"context"
	"fmt"
	"time"

	"aeroportal/flightops/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a pooled client. A failed ping is logged, not fatal:
// the pool keeps trying to reconnect.
func NewRedisClient(host, port, password string) *redis.Client {
	addr := fmt.Sprintf("%s:%s", host, port)
	logging.Info("Initializing Redis client", "addr", addr)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Error("Failed to ping Redis", "addr", addr, "error", err)
		return client
	}

	logging.Info("Connected to Redis", "addr", addr)
	return client
}
