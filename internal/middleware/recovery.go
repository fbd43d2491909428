package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"floral-studio/internal/response"
)

// Recovery turns a handler panic into an INTERNAL_ERROR envelope.
func Recovery(logger *zap.Logger, actors ActorSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			fields := append([]zap.Field{
				zap.Any("panic", recovered),
				zap.String("method", c.Request.Method),
				zap.String("route", routeOf(c.FullPath())),
				zap.Stack("stacktrace"),
			}, actorFields(actors)...)
			logger.Error("Studio handler panicked", fields...)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
			c.Abort()
		}()

		c.Next()
	}
}
