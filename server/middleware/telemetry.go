package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/observability"
)

// Telemetry opens a server span per request and records request metrics.
// metrics may be nil.
func Telemetry(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := observability.StartSpan(ctx, c.Request.Method+" "+route, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		if id, ok := c.Get(logger.FieldRequestID); ok {
			observability.SetSpanAttribute(ctx, observability.AttrRequestID, id)
		}

		c.Request = c.Request.WithContext(ctx)
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		observability.SetSpanAttribute(ctx, "http.response.status_code", status)
		if last := c.Errors.Last(); last != nil && status >= 500 {
			observability.SetSpanError(ctx, last.Err)
		}
		if metrics != nil {
			metrics.RecordRequest(ctx, c.Request.Method, route, status, time.Since(start))
		}
	}
}
