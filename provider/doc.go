// Package provider is a small generic provider framework: a named,
// availability-checked backend, a factory registry for swapping backends by
// configuration, and composable middleware around request/response calls.
//
// # Middleware
//
// Middleware[I, O] wraps a RequestResponse provider. Chain composes them,
// and Instrument is the logging, metrics and tracing chain the services use:
//
//	wrapped := provider.Instrument[In, Out](log, metrics, "transcribe", "audioviz")(raw)
//
// Func turns a closure into a RequestResponse, which is how per-request
// clients (built from a caller-supplied API key) get the same wrapping.
//
// # Usage
//
//	reg := provider.NewRegistry[llm.Provider, llm.Config]()
//	reg.RegisterFactory("openai", openai.New)
//	p, err := reg.Create("openai", cfg.WithAPIKey(key))
package provider
