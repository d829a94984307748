package llm

import "github.com/kbukum/audioviz/provider"

// Registry maps backend names to factories that build a Provider from Config.
type Registry = provider.Registry[Provider, Config]

// Factory builds a Provider from Config.
type Factory = provider.Factory[Provider, Config]

// NewRegistry creates a new provider registry for LLM providers.
func NewRegistry() *Registry {
	return provider.NewRegistry[Provider, Config]()
}
