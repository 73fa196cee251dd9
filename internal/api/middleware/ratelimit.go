package middleware

import (
	"net/http"
	"strconv"
	"time"

	"fleet-docs-backend/pkg/ratelimit"
	"fleet-docs-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware applies a per-client rate limit, keyed on client IP.
func RateLimitMiddleware(limiter ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAt := limiter.Allow(c.ClientIP())
		if !allowed {
			retryAfter := int(time.Until(retryAt).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
