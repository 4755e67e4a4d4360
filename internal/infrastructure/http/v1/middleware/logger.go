package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"facturador/pkg/logger"
)

// Logger middleware logs HTTP requests with timing and status.
// The logger is also stored on the request context for downstream use.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), log))
		reqLog := log.WithContext(c.Request.Context())

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, "error", errs)
		}

		if status >= 500 {
			reqLog.Errorw("http request", fields...)
			return
		}
		reqLog.Infow("http request", fields...)
	}
}
