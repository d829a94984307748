package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/audioviz/component"
	"github.com/kbukum/audioviz/logger"
)

// Component starts the configured exporters and shuts them down on Stop.
type Component struct {
	cfg     Config
	log     *logger.Logger
	metrics *Metrics
	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
}

var _ component.Component = (*Component)(nil)

// NewComponent builds the instruments on the global meter. Instruments made
// before Start are delegated to the exporting provider once it is installed.
func NewComponent(cfg Config, log *logger.Logger) (*Component, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := NewMetrics(Meter(cfg.ServiceName))
	if err != nil {
		return nil, err
	}
	return &Component{cfg: cfg, log: log.WithComponent("observability"), metrics: m}, nil
}

// Metrics returns the shared instruments.
func (c *Component) Metrics() *Metrics { return c.metrics }

func (c *Component) Name() string { return "observability" }

func (c *Component) Start(ctx context.Context) error {
	if c.cfg.Tracing.Enabled {
		tp, err := InitTracer(ctx, c.cfg)
		if err != nil {
			return fmt.Errorf("observability: %w", err)
		}
		c.tp = tp
		c.log.Info("tracer initialized", logger.Fields("endpoint", c.cfg.Tracing.Endpoint))
	}
	if c.cfg.Metrics.Enabled {
		mp, err := InitMeter(ctx, c.cfg)
		if err != nil {
			return fmt.Errorf("observability: %w", err)
		}
		c.mp = mp
		c.log.Info("meter initialized", logger.Fields("endpoint", c.cfg.Metrics.Endpoint))
	}
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		errs = append(errs, c.tp.Shutdown(ctx))
	}
	if c.mp != nil {
		errs = append(errs, c.mp.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	return component.Description{
		Type:    "telemetry",
		Details: fmt.Sprintf("tracing=%t metrics=%t", c.cfg.Tracing.Enabled, c.cfg.Metrics.Enabled),
	}
}
