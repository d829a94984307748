package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/audioviz/logger"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func sumByAttr(t *testing.T, reader *sdkmetric.ManualReader, name, key string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s is %T, want Sum[int64]", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key(key))
				out[v.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestRecordOutcome(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	m.RecordOutcome(ctx, "visualize", "parsed")
	m.RecordOutcome(ctx, "visualize", "empty")
	m.RecordOutcome(ctx, "visualize", "empty")
	m.RecordOutcome(ctx, "visualize", "error")

	got := sumByAttr(t, reader, "operation.outcome.total", AttrOutcome)
	if got["parsed"] != 1 || got["empty"] != 2 || got["error"] != 1 {
		t.Errorf("unexpected outcome counts %v", got)
	}
}

func TestRecordOperation(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordOperation(context.Background(), "openai", "summarize", "ok", 10*time.Millisecond)
	m.RecordOperation(context.Background(), "openai", "summarize", "error", time.Millisecond)

	got := sumByAttr(t, reader, "provider.operation.total", "status")
	if got["ok"] != 1 || got["error"] != 1 {
		t.Errorf("unexpected operation counts %v", got)
	}
}

func TestStartSpanRecordsError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "gemini.transcribe")
	SetSpanAttribute(ctx, AttrProvider, "gemini")
	SetSpanError(ctx, errors.New("quota exceeded"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Description != "quota exceeded" {
		t.Errorf("expected error status, got %+v", spans[0].Status)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}

func TestSetSpanHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "k", "v")
	SetSpanError(ctx, errors.New("ignored"))
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Tracing.SampleRate != 1.0 || cfg.Metrics.Interval != 15*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	cfg.Tracing.SampleRate = 2
	if err := cfg.Validate(); err == nil {
		t.Error("expected sample rate validation error")
	}
}

func TestComponentDisabledIsNoop(t *testing.T) {
	c, err := NewComponent(Config{ServiceName: "audioviz"}, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Metrics().RecordOutcome(ctx, "visualize", "parsed")
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
