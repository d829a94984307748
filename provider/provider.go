package provider

import "context"

// Provider is anything built per request to talk to an upstream AI service.
type Provider interface {
	// Name identifies the backend in logs, metrics and spans ("gemini", "openai").
	Name() string
	// IsAvailable reports whether the backend can take a call right now.
	IsAvailable(ctx context.Context) bool
}

// Factory builds a backend from its typed config. It runs once per request
// because the config carries the caller's API key.
type Factory[T Provider, C any] func(cfg C) (T, error)
