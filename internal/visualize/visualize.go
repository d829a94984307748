// Package visualize asks an LLM backend for an infographic blueprint of a
// text. Output that does not parse is answered with an empty object rather
// than an error; failed provider calls stay errors.
package visualize

import (
	"context"

	"github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/llm"
	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/observability"
	"github.com/kbukum/audioviz/provider"
)

// Operation is the metric operation name.
const Operation = "visualize"

// Outcome classifies a visualization result.
type Outcome string

const (
	Parsed Outcome = "parsed"
	Empty  Outcome = "empty"
	// Failed is only recorded in metrics; callers receive an error instead.
	Failed Outcome = "error"
)

// Result is the outcome of one Visualize call.
type Result struct {
	Outcome   Outcome
	Blueprint *Blueprint
}

// Data is the value served under "data": the blueprint, or {} when the
// output was malformed.
func (r Result) Data() any {
	if r.Outcome != Parsed || r.Blueprint == nil {
		return map[string]any{}
	}
	return r.Blueprint
}

// Options selects the backend and how it is reported.
type Options struct {
	Backend     string
	Label       string
	Config      llm.Config
	ServiceName string
}

// Service builds blueprints.
type Service struct {
	registry *llm.Registry
	opts     Options
	log      *logger.Logger
	metrics  *observability.Metrics
}

// NewService creates a Service. metrics may be nil.
func NewService(reg *llm.Registry, opts Options, log *logger.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		registry: reg,
		opts:     opts,
		log:      log.WithComponent("visualize"),
		metrics:  metrics,
	}
}

// Visualize returns a Parsed or Empty result, or a ProviderError when the
// upstream call failed.
func (s *Service) Visualize(ctx context.Context, key, text string) (Result, error) {
	log := s.log.WithContext(ctx)

	p, err := s.registry.Create(s.opts.Backend, s.opts.Config.WithAPIKey(key))
	if err != nil {
		s.record(ctx, Failed)
		return Result{}, errors.ProviderError(s.opts.Label, err)
	}
	wrapped := provider.Instrument[llm.CompletionRequest, llm.CompletionResponse](s.log, s.metrics, Operation, s.opts.ServiceName)(p)

	output, err := llm.Complete(ctx, wrapped, "", Prompt(text))
	if err != nil {
		s.record(ctx, Failed)
		return Result{}, errors.FromUpstream(s.opts.Label, err)
	}

	bp, err := Parse(output)
	if err != nil {
		s.record(ctx, Empty)
		log.Warn("malformed visualization output", logger.Fields(
			logger.FieldProvider, p.Name(),
			logger.FieldError, errors.MalformedOutput(err).Message,
			"output_chars", len(output),
		))
		return Result{Outcome: Empty}, nil
	}

	s.record(ctx, Parsed)
	fields := logger.Fields(
		logger.FieldProvider, p.Name(),
		"sections", len(bp.Sections),
		"skipped_sections", bp.Skipped,
	)
	if bp.Skipped > 0 {
		log.Warn("visualization sections skipped", fields)
	} else {
		log.Debug("visualization parsed", fields)
	}
	return Result{Outcome: Parsed, Blueprint: bp}, nil
}

func (s *Service) record(ctx context.Context, o Outcome) {
	if s.metrics != nil {
		s.metrics.RecordOutcome(ctx, Operation, string(o))
	}
}
