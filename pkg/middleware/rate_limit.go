package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware caps requests per client per window using a redis
// counter. The public subscription and visit endpoints sit behind it. Redis
// being down fails open: the boundary stays available, only the limit is lost.
func RateLimitMiddleware(redisClient *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, exists := c.Get("user_id")
		if !exists {
			client = c.ClientIP()
		}

		key := fmt.Sprintf("ratelimit:%s:%v", c.Request.URL.Path, client)

		ctx := c.Request.Context()
		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
