package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"reelvault/internal/pkg/logger"
	"reelvault/internal/pkg/response"
)

// ErrorLogger logs detailed error information and recovers from panics.
func ErrorLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logRequestError(log, c, start, "panic", err, debug.Stack())
				response.Abort(c, http.StatusInternalServerError, response.CodeInternal, "Internal Server Error")
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					logRequestError(log, c, start, "http_error", fmt.Errorf("status=%d", c.Writer.Status()), nil)
				}
				return
			}

			for _, ginErr := range c.Errors {
				logRequestError(log, c, start, fmt.Sprintf("%v", ginErr.Type), ginErr.Err, nil)
			}
		}()

		c.Next()
	}
}

// AccessLog writes one line per request.
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := zerolog.InfoLevel
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = zerolog.WarnLevel
		}
		log.Event(c.Request.Context(), level).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("user_id", c.GetString("user_id")).
			Msg("request")
	}
}

func logRequestError(log *logger.Logger, c *gin.Context, start time.Time, errType string, err error, stack []byte) {
	event := log.Event(c.Request.Context(), zerolog.ErrorLevel).
		Err(err).
		Str("type", errType).
		Int("status", c.Writer.Status()).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("query", c.Request.URL.RawQuery).
		Str("client_ip", c.ClientIP()).
		Str("user_id", c.GetString("user_id")).
		Str("request_id", c.GetString("request_id")).
		Dur("latency", time.Since(start))
	if stack != nil {
		event = event.Str("stack", string(stack))
	}
	event.Msg("request_error")
}
