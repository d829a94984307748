// Package summarize produces a structured markdown summary of a text with an
// LLM backend built for the caller's key.
package summarize

import (
	"context"

	"github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/llm"
	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/observability"
	"github.com/kbukum/audioviz/provider"
)

// Operation is the metric operation name.
const Operation = "summarize"

// Options selects the backend and how it is reported.
type Options struct {
	Backend     string
	Label       string
	Config      llm.Config
	ServiceName string
}

// Service summarizes text.
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
		log:      log.WithComponent("summarize"),
		metrics:  metrics,
	}
}

// Summarize returns the generated markdown as-is.
func (s *Service) Summarize(ctx context.Context, key, text string) (string, error) {
	p, err := s.registry.Create(s.opts.Backend, s.opts.Config.WithAPIKey(key))
	if err != nil {
		return "", errors.ProviderError(s.opts.Label, err)
	}
	wrapped := provider.Instrument[llm.CompletionRequest, llm.CompletionResponse](s.log, s.metrics, Operation, s.opts.ServiceName)(p)

	summary, err := llm.Complete(ctx, wrapped, SystemPrompt, UserPrompt(text))
	if err != nil {
		return "", errors.FromUpstream(s.opts.Label, err)
	}
	return summary, nil
}
