package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger writes one zap entry per studio API call.
// The actor is captured before the handler runs, so a logout is logged as the user who left.
func Logger(logger *zap.Logger, actors ActorSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		actor := actorFields(actors)

		c.Next()

		status := c.Writer.Status()
		fields := append([]zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", routeOf(c.FullPath())),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}, actor...)

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("Studio request failed", fields...)
		case status == http.StatusForbidden:
			logger.Warn("Studio request denied", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("Studio request rejected", fields...)
		default:
			logger.Info("Studio request served", fields...)
		}
	}
}
