package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/infrastructure/ratelimit"
	"github.com/reque-io/reque/internal/shared/config"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils"
)

// RateLimitMiddleware throttles sensitive endpoints per client IP using the
// Redis sliding-window limiter. When Redis is unavailable the middleware
// fails open so an outage never locks everyone out.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	limits  ratelimit.Limits
	enabled bool
	logger  logger.Interface
}

func NewRateLimitMiddleware(limiter ratelimit.Limiter, cfg *config.RateLimitConfig, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		limits:  ratelimit.LimitsFromConfig(cfg),
		enabled: cfg.Enabled,
		logger:  logger,
	}
}

// Limit returns a handler that throttles by client IP within the named
// scope. Each scope keeps its own counters so login attempts do not eat the
// registration budget.
func (m *RateLimitMiddleware) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled || m.limiter == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())

		allowed, err := m.limiter.Allow(c.Request.Context(), key, m.limits)
		if err != nil {
			m.logger.Warnw("rate limiter unavailable, allowing request",
				"error", err, "scope", scope, "client_ip", c.ClientIP())
			c.Next()
			return
		}

		if m.limits.PerMinute > 0 {
			remaining, err := m.limiter.Remaining(c.Request.Context(), key, time.Minute)
			if err == nil {
				c.Header("X-RateLimit-Limit", strconv.Itoa(m.limits.PerMinute))
				c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			}
		}

		if !allowed {
			m.logger.Warnw("rate limit exceeded", "scope", scope, "client_ip", c.ClientIP())
			c.Header("Retry-After", "60")
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
