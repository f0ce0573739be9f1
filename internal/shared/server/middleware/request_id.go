package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey     = "requestId"
	requestIDHeader  = "X-Request-Id"
	wizardStepKey    = "wizardStep"
	maxRequestIDSize = 64
)

// RequestID attaches a request ID to the context and the response header.
// A caller-supplied ID is kept when it is short and made of URL-safe
// characters; anything else is replaced with a fresh UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext fetches the request ID stored by RequestID middleware.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(requestIDKey)
}

// RequestFields returns the log fields identifying the request and, once a
// handler has resolved them, its session and wizard step.
func RequestFields(c *gin.Context) map[string]any {
	fields := map[string]any{"request_id": RequestIDFromContext(c)}
	if c == nil {
		return fields
	}
	if id := SessionIDFromContext(c); id != "" {
		fields["session_id"] = id
	}
	if step := c.GetString(wizardStepKey); step != "" {
		fields["wizard_step"] = step
	}
	return fields
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDSize {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
