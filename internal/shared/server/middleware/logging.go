package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/shared/telemetry"
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
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		step, _ := c.Get("wizardStep")
		stepTransition := ""
		if raw, ok := c.Get("stepTransition"); ok {
			if s, ok := raw.(string); ok {
				stepTransition = s
			}
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":      reqID,
			"method":          c.Request.Method,
			"path":            c.Request.URL.Path,
			"route":           c.FullPath(),
			"status":          status,
			"step_transition": stepTransition,
			"duration_ms":     float64(latency.Microseconds()) / 1000.0,
			"session_id":      SessionIDFromContext(c),
			"wizard_step":     step,
			"client_ip":       c.ClientIP(),
			"user_agent":      c.Request.UserAgent(),
		})
	}
}
