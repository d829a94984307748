// Package llm defines the provider-agnostic completion types and the
// Provider interface that chat backends implement.
//
// Backends live in sub-packages and register a factory by name:
//
//   - llm/openai: OpenAI chat completions (go-openai)
//   - llm/gemini: Google Gemini generateContent (genai)
//
// Providers are cheap to build and are built per request from the caller's
// API key:
//
//	reg := llm.NewRegistry()
//	openai.Register(reg)
//	p, err := reg.Create(openai.Name, cfg.WithAPIKey(key))
//	text, err := llm.Complete(ctx, p, system, user)
package llm
