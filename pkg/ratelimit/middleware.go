package ratelimit

import (
	"net/http"
	"strconv"

	"lagoona/internal/shared/utils/response"
	"lagoona/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware limits requests per client IP for a route class
func Middleware(limiter *Limiter, limitType RateLimitType) gin.HandlerFunc {
	log := logger.GetDefault()

	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if limiter.IsWhitelisted(ip) {
			c.Next()
			return
		}

		result, err := limiter.Allow(c.Request.Context(), ip, limitType)
		if err != nil {
			// Fail open: a limiter outage must not take the API down
			log.ErrorWithContext(c.Request.Context(), "rate limiter unavailable", err, nil)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		remaining := int64(result.Limit) - result.Count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !result.Allowed {
			if result.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
			}
			log.LogRateLimitExceeded(c.Request.Context(), ip, c.FullPath())
			response.Error(c, http.StatusTooManyRequests, "Too many requests", "RATE_LIMITED")
			c.Abort()
			return
		}

		c.Next()
	}
}
