// Package credential picks the API key for each upstream call: the
// caller's header value when present, otherwise the server default.
package credential

import (
	"context"
	"strings"

	"github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/logger"
)

// Provider identifies an upstream service and the header that carries its key.
type Provider struct {
	Name   string
	Header string
	Label  string
}

var (
	Gemini = Provider{Name: "gemini", Header: "X-Gemini-API-Key", Label: "Gemini"}
	OpenAI = Provider{Name: "openai", Header: "X-OpenAI-API-Key", Label: "OpenAI"}
)

// Source tells where a resolved key came from.
type Source string

const (
	SourceHeader  Source = "header"
	SourceDefault Source = "default"
)

// Resolver holds the server default key per provider. It is read-only
// after construction and safe for concurrent use.
type Resolver struct {
	defaults map[string]string
	log      *logger.Logger
}

// NewResolver copies defaults, keyed by Provider.Name. Blank values are
// treated as absent.
func NewResolver(defaults map[string]string, log *logger.Logger) *Resolver {
	d := make(map[string]string, len(defaults))
	for name, key := range defaults {
		if key = strings.TrimSpace(key); key != "" {
			d[name] = key
		}
	}
	return &Resolver{defaults: d, log: log.WithComponent("credential")}
}

// HasDefault reports whether a server default exists for p.
func (r *Resolver) HasDefault(p Provider) bool {
	_, ok := r.defaults[p.Name]
	return ok
}

// Resolve returns the trimmed header value, else the default, else a
// MissingCredential error naming the provider. Only the source is logged.
func (r *Resolver) Resolve(ctx context.Context, p Provider, headerValue string) (string, error) {
	key, src, ok := r.pick(p, headerValue)
	if !ok {
		r.log.WithContext(ctx).Warn("no api key available", logger.Fields(logger.FieldProvider, p.Name))
		return "", errors.MissingCredential(p.Label)
	}
	r.log.WithContext(ctx).Debug("api key resolved", logger.Fields(
		logger.FieldProvider, p.Name,
		"source", string(src),
	))
	return key, nil
}

func (r *Resolver) pick(p Provider, headerValue string) (string, Source, bool) {
	if v := strings.TrimSpace(headerValue); v != "" {
		return v, SourceHeader, true
	}
	if v, ok := r.defaults[p.Name]; ok {
		return v, SourceDefault, true
	}
	return "", "", false
}
