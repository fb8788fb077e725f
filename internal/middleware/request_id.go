package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reelvault/internal/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or mints one, echoes it back and
// attaches it to the request logger.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		if log != nil {
			c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		}
		c.Next()
	}
}
