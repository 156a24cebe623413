package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit caps how often a client may hit a route within the window.
// Keys are per route and per user (falling back to client IP for anonymous
// requests). A nil redis client disables the limiter.
func RateLimit(redisClient *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		userID, exists := c.Get(UserIDKey)
		if !exists {
			userID = c.ClientIP()
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.Request.URL.Path, userID)

		ctx := c.Request.Context()
		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not lock users out
			c.Next()
			return
		}

		if count == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			c.String(http.StatusTooManyRequests, "Too many attempts, try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
