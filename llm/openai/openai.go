// Package openai implements llm.Provider on the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/audioviz/llm"
)

// Name is the registry name of this backend.
const Name = "openai"

// DefaultModel is used when the config names no model.
const DefaultModel = "gpt-4o"

// Provider sends chat completions with one API key.
type Provider struct {
	client *goopenai.Client
	cfg    llm.Config
}

var _ llm.Provider = (*Provider)(nil)

// Register adds the OpenAI factory to reg.
func Register(reg *llm.Registry) {
	reg.RegisterFactory(Name, New)
}

// New builds a client for cfg.APIKey. BaseURL points the client at an
// OpenAI-compatible gateway.
func New(cfg llm.Config) (llm.Provider, error) {
	p, err := NewWithHTTPClient(cfg, cfg.HTTPClient)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewWithHTTPClient is New with a custom HTTP client.
func NewWithHTTPClient(cfg llm.Config, hc *http.Client) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: api key is required")
	}
	oc := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if hc != nil {
		oc.HTTPClient = hc
	}
	return &Provider{client: goopenai.NewClientWithConfig(oc), cfg: cfg}, nil
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

// Execute sends one chat completion and returns the first choice.
func (p *Provider) Execute(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.cfg.ModelOr(DefaultModel)
	}

	msgs := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	temp := req.Temperature
	if temp == 0 {
		temp = p.cfg.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.cfg.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: float32(temp),
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return llm.CompletionResponse{}, err
	}
	if len(resp.Choices) == 0 {
		return llm.CompletionResponse{}, errors.New("openai: response contained no choices")
	}

	return llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
