package summarize

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	apperrors "github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/llm"
	"github.com/kbukum/audioviz/logger"
)

type echoProvider struct {
	key string
	req llm.CompletionRequest
	err error
}

func (e *echoProvider) Name() string                       { return "echo" }
func (e *echoProvider) IsAvailable(_ context.Context) bool { return true }

func (e *echoProvider) Execute(_ context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	e.req = req
	if e.err != nil {
		return llm.CompletionResponse{}, e.err
	}
	last := req.Messages[len(req.Messages)-1].Content
	return llm.CompletionResponse{Content: "## Executive Summary\n" + last[len(last)-5:]}, nil
}

func newService(p *echoProvider) *Service {
	reg := llm.NewRegistry()
	reg.RegisterFactory("echo", func(cfg llm.Config) (llm.Provider, error) {
		p.key = cfg.APIKey
		return p, nil
	})
	log := logger.NewWithWriter(&logger.Config{Level: "error"}, "test", io.Discard)
	return NewService(reg, Options{Backend: "echo", Label: "OpenAI", ServiceName: "test"}, log, nil)
}

func TestSummarize(t *testing.T) {
	p := &echoProvider{}
	svc := newService(p)

	got, err := svc.Summarize(context.Background(), "sk-test", "Hello world")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got != "## Executive Summary\nworld" {
		t.Errorf("unexpected summary %q", got)
	}
	if p.key != "sk-test" {
		t.Errorf("key not forwarded, got %q", p.key)
	}
	if p.req.SystemPrompt != SystemPrompt {
		t.Errorf("unexpected system prompt %q", p.req.SystemPrompt)
	}
	if len(p.req.Messages) != 1 || p.req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("expected one user message, got %+v", p.req.Messages)
	}
	if !strings.HasSuffix(p.req.Messages[0].Content, "Text to summarize:\nHello world") {
		t.Errorf("text not appended to instructions")
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	svc := newService(&echoProvider{})
	a, err := svc.Summarize(context.Background(), "k", "The same input text")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Summarize(context.Background(), "k", "The same input text")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("outputs differ: %q vs %q", a, b)
	}
}

func TestSummarize_ProviderError(t *testing.T) {
	svc := newService(&echoProvider{err: errors.New("Incorrect API key provided")})
	_, err := svc.Summarize(context.Background(), "bad", "text")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeProvider || appErr.Message != "Incorrect API key provided" {
		t.Fatalf("expected ProviderError with upstream message, got %v", err)
	}
}

func TestUserPrompt(t *testing.T) {
	prompt := UserPrompt("100% done")
	for _, want := range []string{
		"SAME language",
		"## Executive Summary",
		"## Key Highlights",
		"## Action Items",
		"Text to summarize:\n100% done",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	exec := strings.Index(prompt, "## Executive Summary")
	high := strings.Index(prompt, "## Key Highlights")
	act := strings.Index(prompt, "## Action Items")
	if !(exec < high && high < act) {
		t.Error("sections out of order")
	}
}
