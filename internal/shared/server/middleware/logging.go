package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coverletter/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"bytes":       c.Writer.Size(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if n, ok := c.Get(cvBytesKey); ok {
			fields["cv_bytes"] = n
		}
		if n, ok := c.Get(jobDescriptionBytesKey); ok {
			fields["job_description_bytes"] = n
		}
		telemetry.Info("request.complete", fields)
	}
}

const (
	cvBytesKey             = "cvBytes"
	jobDescriptionBytesKey = "jobDescriptionBytes"
)

// SetPayloadSizes records request payload sizes for the request log.
func SetPayloadSizes(c *gin.Context, cvBytes, jobDescriptionBytes int) {
	c.Set(cvBytesKey, cvBytes)
	c.Set(jobDescriptionBytesKey, jobDescriptionBytes)
}
