package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/bujo-tasks/internal/logger"
)

// RequestLogger attaches a request-scoped zerolog logger to the request
// context and logs one line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		l := logger.L().With().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = l.Error()
		case status >= 400:
			event = l.Warn()
		default:
			event = l.Info()
		}
		if requester, ok := GetRequester(c); ok {
			event = event.Str("requester", requester)
		}
		event.
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
