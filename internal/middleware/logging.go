package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"subscription_feed_api/internal/core/ports"
	"subscription_feed_api/internal/metrics"
)

// RequestLogger logs one line per request with method, path, status and
// duration.
func RequestLogger(log ports.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)

		msg := fmt.Sprintf("%s %s -> %d (%s)", method, path, status, elapsed)
		if status >= 500 {
			log.Error(msg, nil)
			return
		}
		log.Info(msg)
	}
}

// Metrics records request counts and latency per route.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
