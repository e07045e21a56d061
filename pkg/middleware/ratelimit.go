package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artify/pkg/ratelimit"
)

// RateLimitMiddleware applies a per-user quota. It runs after auth, so the
// key is the authenticated user id; unauthenticated requests fall back to
// the client IP.
func RateLimitMiddleware(limiter *ratelimit.FixedWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString("user_id")
		if key == "" {
			key = c.ClientIP()
		}
		if !limiter.Allow(key) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
