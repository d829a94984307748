// Package transcription defines the provider interface and common types
// for speech-to-text backends.
//
// # Backends
//
//   - transcription/gemini: Gemini Files API upload + generateContent
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	gemini.Register(reg)
//	p, err := reg.Create(gemini.Name, cfg.WithAPIKey(key))
//	resp, err := p.Execute(ctx, transcription.Request{Audio: f, MIMEType: "audio/mpeg"})
package transcription
