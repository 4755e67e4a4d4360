package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "facturador/internal/core/context"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Gin context keys.
const (
	KeyRequestID = "request_id"
	KeyTraceID   = "trace_id"
)

// Trace propagates X-Request-ID and X-Trace-ID, generating whichever is
// missing, and echoes both on the response.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		tc := appctx.NewTraceContext(ctx, c.GetHeader(HeaderTraceID), c.GetHeader(HeaderRequestID))
		c.Request = c.Request.WithContext(appctx.WithTrace(ctx, tc))

		c.Set(KeyTraceID, tc.TraceID)
		c.Set(KeyRequestID, tc.RequestID)
		c.Header(HeaderRequestID, tc.RequestID)
		c.Header(HeaderTraceID, tc.TraceID)

		c.Next()
	}
}
