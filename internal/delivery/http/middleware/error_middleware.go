package middleware

import (
	"errors"
	"net/http"

	"go-hiring-pipeline/internal/delivery/http/response"
	"go-hiring-pipeline/pkg/apperror"
	"go-hiring-pipeline/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors appended to the gin context into the standard
// JSON envelope. Validation errors carry their per-field detail; anything
// unclassified is logged server-side and returned as a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code == http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("internal error",
					"error", appErr.Err.Error(),
					"path", c.FullPath(),
					"request_id", c.GetString("RequestID"),
				)
				response.Error(c, appErr.Code, "An unexpected error occurred. Please try again later.", nil)
				return
			}
			var fields interface{}
			if len(appErr.Fields) > 0 {
				fields = appErr.Fields
			}
			response.Error(c, appErr.Code, appErr.Message, fields)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("unhandled error",
			"error", err.Error(),
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
