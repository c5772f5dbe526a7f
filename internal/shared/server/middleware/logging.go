package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/shared/metrics"
	"cv-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request and records its duration.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		durationMs := float64(latency.Microseconds()) / 1000.0

		metrics.ObserveRequestDurationMs(durationMs)

		jobID, _ := c.Get("jobId")
		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": durationMs,
			"job_id":      jobID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if status >= 500 {
			telemetry.Error("request.complete", fields)
			return
		}
		telemetry.Info("request.complete", fields)
	}
}
