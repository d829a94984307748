package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/audioviz/logger"
)

var quietPaths = map[string]bool{
	"/health": true,
}

// RequestLogger logs every request with method, path, status and latency.
// Errors attached with c.Error are included. Health checks are skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if quietPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logger.Fields(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			logger.FieldStatus, status,
			logger.FieldDuration, time.Since(start).Milliseconds(),
			"client", c.ClientIP(),
		)
		if last := c.Errors.Last(); last != nil {
			fields[logger.FieldError] = last.Error()
		}

		l := log.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			l.Error("request completed", fields)
		case status >= 400:
			l.Warn("request completed", fields)
		default:
			l.Info("request completed", fields)
		}
	}
}
