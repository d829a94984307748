// Package gemini transcribes audio with Gemini: the file is uploaded through
// the Files API, referenced from a generateContent call, then deleted.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/kbukum/audioviz/llm"
	llmgemini "github.com/kbukum/audioviz/llm/gemini"
	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/transcription"
)

// Name is the registry name of this backend.
const Name = "gemini"

// DefaultModel is used when the config names no model.
const DefaultModel = "gemini-2.0-flash"

// Instruction is sent ahead of the audio part.
const Instruction = "Please transcribe this audio file accurately. Provide only the transcription text without any additional commentary."

const deleteTimeout = 10 * time.Second

type filesAPI interface {
	Upload(ctx context.Context, r io.Reader, config *genai.UploadFileConfig) (*genai.File, error)
	Delete(ctx context.Context, name string, config *genai.DeleteFileConfig) (*genai.DeleteFileResponse, error)
}

type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider transcribes audio with one API key.
type Provider struct {
	files  filesAPI
	models modelsAPI
	cfg    transcription.Config
	log    *logger.Logger
}

var _ transcription.Provider = (*Provider)(nil)

// Register adds the Gemini factory to reg.
func Register(reg *transcription.Registry) {
	reg.RegisterFactory(Name, New)
}

// New builds a client for cfg.APIKey.
func New(cfg transcription.Config) (transcription.Provider, error) {
	p, err := NewWithHTTPClient(context.Background(), cfg, cfg.HTTPClient)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewWithHTTPClient is New with a custom HTTP client.
func NewWithHTTPClient(ctx context.Context, cfg transcription.Config, hc *http.Client) (*Provider, error) {
	client, err := llmgemini.NewClient(ctx, llm.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		APIVersion: cfg.APIVersion,
	}, hc)
	if err != nil {
		return nil, err
	}
	return newProvider(client.Files, client.Models, cfg), nil
}

func newProvider(files filesAPI, models modelsAPI, cfg transcription.Config) *Provider {
	return &Provider{
		files:  files,
		models: models,
		cfg:    cfg,
		log:    logger.WithComponent("transcription.gemini"),
	}
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

// Execute uploads the audio, asks the model for a transcript and deletes the
// remote file. A failed delete is logged and does not fail the call.
func (p *Provider) Execute(ctx context.Context, req transcription.Request) (transcription.Response, error) {
	if req.Audio == nil {
		return transcription.Response{}, errors.New("gemini: audio is required")
	}
	model := req.Model
	if model == "" {
		model = p.cfg.Model
	}
	if model == "" {
		model = DefaultModel
	}

	file, err := p.files.Upload(ctx, req.Audio, &genai.UploadFileConfig{
		MIMEType:    req.MIMEType,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return transcription.Response{}, fmt.Errorf("gemini: upload audio: %w", err)
	}
	defer p.deleteRemote(ctx, file.Name)

	mimeType := file.MIMEType
	if mimeType == "" {
		mimeType = req.MIMEType
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(Instruction),
			genai.NewPartFromURI(file.URI, mimeType),
		}, genai.RoleUser),
	}

	resp, err := p.models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return transcription.Response{}, err
	}
	text, err := llmgemini.ResponseText(resp)
	if err != nil {
		return transcription.Response{}, err
	}
	return transcription.Response{Text: text, Model: model}, nil
}

// deleteRemote runs even when ctx is already cancelled.
func (p *Provider) deleteRemote(ctx context.Context, name string) {
	if name == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deleteTimeout)
	defer cancel()
	if _, err := p.files.Delete(ctx, name, nil); err != nil {
		p.log.WithContext(ctx).Warn("failed to delete uploaded audio", logger.Fields(
			"file", name,
			logger.FieldError, err.Error(),
		))
	}
}
