// File: internal/middleware/error.go
package middleware

import (
	"net/http"

	"streamhub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler recovers from panics and maps errors recorded on the Gin
// context into uniform JSON error responses.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("requestID", c.GetString("requestID")),
				)
				if !c.Writer.Written() {
					common.RespondWithError(c, common.ErrInternalServer)
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		logger.Error("Unhandled request error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("requestID", c.GetString("requestID")),
		)

		if apiErr, ok := common.IsAPIError(err); ok {
			common.RespondWithError(c, apiErr)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    common.ErrInternalServer.Code,
			"message": common.ErrInternalServer.Message,
		}})
	}
}
