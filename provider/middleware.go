package provider

import (
	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/observability"
)

// Middleware wraps one upstream call with extra behaviour and returns a
// RequestResponse with the same types.
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Chain applies middlewares so the first one listed sees the call first:
// Chain(a, b, c)(p) == a(b(c(p))).
func Chain[I, O any](middlewares ...Middleware[I, O]) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// Instrument is the chain every upstream call in the service goes through:
// logging outermost, then the operation metrics, then a span named after
// serviceName. metrics may be nil.
func Instrument[I, O any](log *logger.Logger, metrics *observability.Metrics, operation, serviceName string) Middleware[I, O] {
	return Chain(
		WithLogging[I, O](log),
		WithMetrics[I, O](metrics, operation),
		WithTracing[I, O](serviceName),
	)
}
