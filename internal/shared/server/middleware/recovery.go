package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/shared/server/respond"
	"readiness-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 envelope. The log line carries
// the session and wizard step so a crash can be tied to an assessment.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := RequestFields(c)
			fields["error"] = fmt.Sprint(rec)
			fields["stack"] = string(debug.Stack())
			fields["method"] = c.Request.Method
			fields["path"] = c.Request.URL.Path
			if route := c.FullPath(); route != "" {
				fields["route"] = route
			}
			telemetry.Error("panic", fields)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
