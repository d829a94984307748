package transcription

import "io"

// Request holds one audio file to transcribe.
type Request struct {
	// Audio is the audio stream. Providers read it once.
	Audio io.Reader
	// MIMEType is the audio content type (e.g. "audio/mpeg").
	MIMEType string
	// DisplayName is a human-readable name for the upload, usually the
	// original filename.
	DisplayName string
	// Model overrides the provider's default model.
	Model string
}

// Response holds the result of a transcription call.
type Response struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Model is the model that produced the transcript.
	Model string `json:"model,omitempty"`
}
