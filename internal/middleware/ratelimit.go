package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/metrics"
	"github.com/BruksfildServices01/store-rating/internal/ratelimit"
)

// RateLimit refuses clients that exceed limiter, keyed by client IP and
// route. A limiter error lets the request through.
func RateLimit(limiter ratelimit.Limiter, log *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()

		ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			m.RateLimited(c.FullPath())
			log.Info("rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.String("route", c.FullPath()),
			)
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests, please try again later.")
			return
		}

		c.Next()
	}
}
