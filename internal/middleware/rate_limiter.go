package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimiterConfig holds rate limiter configuration.
type RateLimiterConfig struct {
	Limit  int           // Maximum requests per window
	Window time.Duration // Window length
}

// AuthRateLimiterConfig throttles credential guessing on the auth
// endpoints: 10 attempts per minute per client.
func AuthRateLimiterConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		Limit:  10,
		Window: time.Minute,
	}
}

// RateLimiterMiddleware implements a fixed-window counter in Redis, keyed
// by client IP. A nil client or a Redis failure fails open: losing rate
// limiting must not take down authentication.
func RateLimiterMiddleware(redisClient *redis.Client, config *RateLimiterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		key := ClientRateLimiterKey(c.ClientIP())

		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			logrus.WithError(err).Error("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			if err := redisClient.Expire(ctx, key, config.Window).Err(); err != nil {
				logrus.WithError(err).Warn("Failed to set rate limiter window")
			}
		}

		if count > int64(config.Limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": config.Window.String(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClientRateLimiterKey builds the limiter key for one client.
func ClientRateLimiterKey(ip string) string {
	return "rate_limiter:client:" + ip
}
