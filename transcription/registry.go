package transcription

import "github.com/kbukum/audioviz/provider"

// Registry maps backend names to transcription provider factories.
type Registry = provider.Registry[Provider, Config]

// NewRegistry creates a new provider registry for transcription providers.
func NewRegistry() *Registry {
	return provider.NewRegistry[Provider, Config]()
}
