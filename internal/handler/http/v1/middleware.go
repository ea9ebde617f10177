package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_map/internal/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware ограничивает частоту запросов общим лимитом в rps запросов в секунду
func RateLimitMiddleware(rps int, log *logrus.Logger) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			log.WithField("path", c.FullPath()).Warn("Rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// MetricsMiddleware считает запросы и их длительность по шаблону маршрута
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(handler, c.Request.Method).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(handler, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
