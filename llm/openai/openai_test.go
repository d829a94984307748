package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/audioviz/llm"
)

type chatBody struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func stubServer(t *testing.T, status int, reply string, seen *chatBody, auth *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if auth != nil {
			*auth = r.Header.Get("Authorization")
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const okReply = `{"id":"c1","object":"chat.completion","model":"gpt-4o","choices":[{"index":0,"message":{"role":"assistant","content":"## Executive Summary\nShort."},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`

func TestExecute(t *testing.T) {
	var seen chatBody
	var auth string
	srv := stubServer(t, http.StatusOK, okReply, &seen, &auth)

	p, err := New(llm.Config{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := p.Execute(context.Background(), llm.CompletionRequest{
		SystemPrompt: "You summarize.",
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: "text"}},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if resp.Content != "## Executive Summary\nShort." {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("expected usage to be mapped, got %+v", resp.Usage)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("expected per-request key, got %q", auth)
	}
	if seen.Model != DefaultModel {
		t.Errorf("expected default model, got %q", seen.Model)
	}
	if len(seen.Messages) != 2 || seen.Messages[0].Role != "system" || seen.Messages[1].Content != "text" {
		t.Errorf("unexpected messages %+v", seen.Messages)
	}
}

func TestExecuteAPIError(t *testing.T) {
	srv := stubServer(t, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`, nil, nil)

	p, _ := New(llm.Config{APIKey: "bad", BaseURL: srv.URL})
	_, err := p.Execute(context.Background(), llm.CompletionRequest{Messages: []llm.Message{{Role: "user", Content: "x"}}})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *goopenai.APIError
	if !errors.As(err, &apiErr) || apiErr.HTTPStatusCode != http.StatusUnauthorized {
		t.Errorf("expected APIError with 401, got %v", err)
	}
	if !strings.Contains(err.Error(), "Incorrect API key provided") {
		t.Errorf("expected upstream message in error, got %q", err.Error())
	}
}

func TestExecuteNoChoices(t *testing.T) {
	srv := stubServer(t, http.StatusOK, `{"id":"c1","choices":[]}`, nil, nil)
	p, _ := New(llm.Config{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Execute(context.Background(), llm.CompletionRequest{}); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(llm.Config{}); err == nil {
		t.Error("expected error without key")
	}
}

func TestRegister(t *testing.T) {
	reg := llm.NewRegistry()
	Register(reg)
	p, err := reg.Create(Name, llm.Config{APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != Name || !p.IsAvailable(context.Background()) {
		t.Error("unexpected provider")
	}
}
