package cache

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"tasktracker/internal/config"
)

// SetupRedis connects to Redis when an address is configured. Without one
// it returns nil and the callers run uncached.
func SetupRedis(redisCfg *config.RedisConfig) *redis.Client {
	if redisCfg.Addr == "" {
		logrus.Info("Redis not configured, task cache and rate limiting disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}

	logrus.WithField("addr", redisCfg.Addr).Info("Redis connection established")
	return rdb
}
