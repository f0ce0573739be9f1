package middleware

import "github.com/gin-gonic/gin"

const sessionIDKey = "sessionId"

// SetSessionID records the session a request operates on for logging.
func SetSessionID(c *gin.Context, id string) {
	c.Set(sessionIDKey, id)
}

// SessionIDFromContext returns the session ID set by a handler, or the
// :id route parameter.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if val, ok := c.Get(sessionIDKey); ok {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return c.Param("id")
}
