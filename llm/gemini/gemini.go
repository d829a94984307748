// Package gemini implements llm.Provider on the Gemini generateContent API
// through the google.golang.org/genai SDK.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/kbukum/audioviz/llm"
)

// Name is the registry name of this backend.
const Name = "gemini"

// DefaultModel is used when the config names no model.
const DefaultModel = "gemini-2.0-flash"

// Provider generates content with one API key.
type Provider struct {
	client *genai.Client
	cfg    llm.Config
}

var _ llm.Provider = (*Provider)(nil)

// Register adds the Gemini factory to reg.
func Register(reg *llm.Registry) {
	reg.RegisterFactory(Name, New)
}

// New builds a client for cfg.APIKey.
func New(cfg llm.Config) (llm.Provider, error) {
	p, err := NewWithHTTPClient(context.Background(), cfg, cfg.HTTPClient)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewWithHTTPClient is New with a custom HTTP client.
func NewWithHTTPClient(ctx context.Context, cfg llm.Config, hc *http.Client) (*Provider, error) {
	client, err := NewClient(ctx, cfg, hc)
	if err != nil {
		return nil, err
	}
	return &Provider{client: client, cfg: cfg}, nil
}

// NewClient creates a genai client for the Gemini API backend. The key is
// always passed explicitly so the SDK never falls back to the environment.
func NewClient(ctx context.Context, cfg llm.Config, hc *http.Client) (*genai.Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	opts := genai.HTTPOptions{APIVersion: cfg.APIVersion}
	if cfg.BaseURL != "" {
		opts.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/") + "/"
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  hc,
		HTTPOptions: opts,
	})
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

// Execute maps system prompts and system messages to the system
// instruction and sends the rest as contents.
func (p *Provider) Execute(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.cfg.ModelOr(DefaultModel)
	}

	var system []string
	if req.SystemPrompt != "" {
		system = append(system, req.SystemPrompt)
	}
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, m.Content)
		case llm.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	gc := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		gc.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	temp := req.Temperature
	if temp == 0 {
		temp = p.cfg.Temperature
	}
	if temp != 0 {
		gc.Temperature = genai.Ptr(float32(temp))
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, gc)
	if err != nil {
		return llm.CompletionResponse{}, err
	}

	text, err := ResponseText(resp)
	if err != nil {
		return llm.CompletionResponse{}, err
	}
	return llm.CompletionResponse{Content: text, Model: model}, nil
}

// ResponseText returns resp.Text(), which leaves out thought parts. A
// response without a candidate is an error.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}
	return resp.Text(), nil
}
