package middleware

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "finmanager/internal/errors"
	"finmanager/internal/logger"
)

func writeError(c *gin.Context, appErr *apperrors.AppError, extra gin.H) {
	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{"error": body})
}

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses. AppErrors are returned with
// their code and message; unexpected errors are logged and return a generic
// internal error to avoid leaking details.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode < 500 {
			writeError(c, appErr, nil)
			return
		}

		log.Error("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		writeError(c, apperrors.ErrInternalServer, nil)
	}
}

// Recovery returns a Gin middleware that turns panics into a 500 response
// carrying the request ID, after logging the request that caused them.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			"error", fmt.Sprint(recovered),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"client_ip", c.ClientIP(),
			"request_id", RequestID(c),
		)
		writeError(c, apperrors.ErrInternalServer, gin.H{"requestId": RequestID(c)})
	})
}

// NotFound answers requests that match no route.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		writeError(c, apperrors.WithMessage(apperrors.ErrNotFound, fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path)), nil)
	}
}
