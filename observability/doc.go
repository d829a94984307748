// Package observability wires OpenTelemetry tracing and metrics.
//
// When exporters are disabled the global no-op providers stay in place, so
// StartSpan and the Metrics instruments are always safe to call.
//
//	ctx, span := observability.StartSpan(ctx, "gemini.transcribe")
//	defer span.End()
//
//	metrics.RecordOutcome(ctx, "visualize", "empty")
package observability
