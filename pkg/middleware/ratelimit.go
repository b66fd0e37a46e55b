package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumacart/storefront/pkg/ratelimit"
)

// RateLimitSettings controls the per-IP limit applied by RateLimit.
type RateLimitSettings struct {
	Enabled bool
	QPS     int
	Burst   int
}

// RateLimit throttles clients by IP. Fails open when the limiter backend is
// unreachable.
func RateLimit(limiter ratelimit.RateLimiter, cfg RateLimitSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || limiter == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		limit := ratelimit.Limit{
			Rate:   cfg.QPS,
			Period: time.Second,
			Burst:  cfg.Burst,
		}

		res, err := limiter.Allow(c.Request.Context(), key, limit)
		if err != nil {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(res.ResetAfter/time.Second), 10))

		if !res.Allowed {
			c.Header("Retry-After", strconv.FormatInt(int64(res.RetryAfter/time.Second), 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       gin.H{"code": "RATE_LIMITED", "message": "too many requests"},
				"retry_after": res.RetryAfter.String(),
			})
			return
		}

		c.Next()
	}
}
