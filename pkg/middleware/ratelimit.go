package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/log"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/response"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter is a Redis-backed fixed-window rate limiter.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a rate limiter allowing limit requests per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Limit returns a Gin middleware that throttles requests per client.
// Redis failures do not block traffic; the limiter fails open.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := rateLimitPrefix + tracker(c)

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			logger := log.Ctx(ctx)
			logger.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, rl.window)
		}

		if count > int64(rl.limit) {
			response.TooManyRequests(c, "rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}

// tracker derives a stable client key from IP, user agent, and device
// headers so distinct clients behind one NAT are throttled separately.
func tracker(c *gin.Context) string {
	ip := c.ClientIP()
	userAgent := c.GetHeader("User-Agent")
	deviceID := c.GetHeader("x-device-id")
	platform := c.GetHeader("if-platform")

	sum := sha256.Sum256(fmt.Appendf(nil, "%s_%s_%s_%s", ip, userAgent, deviceID, platform))
	return hex.EncodeToString(sum[:])
}
