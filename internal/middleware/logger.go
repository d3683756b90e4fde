package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger writes one structured line per request. Severity follows the
// status: 5xx error, 4xx warn, everything else info. Errors attached with
// c.Error are included so storage failures show up next to the request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	l := logger.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var e *zerolog.Event
		switch {
		case status >= 500:
			e = l.Error()
			if err := c.Errors.Last(); err != nil {
				e = e.Err(err.Err)
			}
		case status >= 400:
			e = l.Warn()
		default:
			e = l.Info()
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if id := GetRequestID(c); id != "" {
			e = e.Str("request_id", id)
		}
		e.Dur("latency", time.Since(start)).
			Int("status", status).
			Str("method", c.Request.Method).
			Str("route", route).
			Str("uri", c.Request.RequestURI).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Int("size", c.Writer.Size()).
			Msg("API")
	}
}
