package middleware

import (
	"github.com/gin-gonic/gin"

	"facturador/internal/core/apperror"
	appctx "facturador/internal/core/context"
	"facturador/internal/infrastructure/http/v1/dto"
	"facturador/pkg/logger"
)

// ErrorHandler middleware transforms errors into consistent JSON responses.
// Hides internal errors from clients while logging full details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		WriteError(c, c.Errors.Last().Err)
	}
}

// WriteError renders err as {error, code, details}. Unknown errors become
// INTERNAL_ERROR; their cause is logged and never returned.
func WriteError(c *gin.Context, err error) {
	appErr := apperror.Classify(err)

	if appErr.Err != nil {
		logger.Error(c.Request.Context(), "request error",
			"code", appErr.Code,
			"cause", appErr.Err,
		)
	}

	details := appErr.Details
	if appErr.Kind() == apperror.KindInternal {
		details = map[string]any{"request_id": appctx.GetRequestID(c.Request.Context())}
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, dto.ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: details,
	})
}
