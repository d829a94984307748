// Package transcribe turns a staged upload into text through a
// transcription backend built for the caller's key.
package transcribe

import (
	"context"

	"github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/internal/upload"
	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/observability"
	"github.com/kbukum/audioviz/provider"
	"github.com/kbukum/audioviz/transcription"
)

// Operation is the metric operation name.
const Operation = "transcribe"

// Options selects the backend and how it is reported.
type Options struct {
	// Backend is the registry name, e.g. "gemini".
	Backend string
	// Label names the provider in error messages, e.g. "Gemini".
	Label string
	// Config is the backend config; the API key is replaced per call.
	Config transcription.Config
	// ServiceName prefixes span names.
	ServiceName string
}

// Service transcribes staged audio.
type Service struct {
	registry *transcription.Registry
	opts     Options
	log      *logger.Logger
	metrics  *observability.Metrics
}

// NewService creates a Service. metrics may be nil.
func NewService(reg *transcription.Registry, opts Options, log *logger.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		registry: reg,
		opts:     opts,
		log:      log.WithComponent("transcribe"),
		metrics:  metrics,
	}
}

// Transcribe returns the transcript of audio using key. Upstream failures
// are ProviderError; a passed deadline is reported as a timeout.
func (s *Service) Transcribe(ctx context.Context, key string, audio *upload.Audio) (string, error) {
	p, err := s.registry.Create(s.opts.Backend, s.opts.Config.WithAPIKey(key))
	if err != nil {
		return "", errors.ProviderError(s.opts.Label, err)
	}
	wrapped := provider.Instrument[transcription.Request, transcription.Response](s.log, s.metrics, Operation, s.opts.ServiceName)(p)

	rc, err := audio.Open(ctx)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	resp, err := wrapped.Execute(ctx, transcription.Request{
		Audio:       rc,
		MIMEType:    audio.MIMEType,
		DisplayName: audio.OriginalName,
	})
	if err != nil {
		return "", errors.FromUpstream(s.opts.Label, err)
	}

	s.log.WithContext(ctx).Info("transcription complete", logger.Fields(
		logger.FieldProvider, p.Name(),
		"chars", len(resp.Text),
	))
	return resp.Text, nil
}
