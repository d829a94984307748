package credential

import (
	"bytes"
	"context"
	"strings"
	"testing"

	apperrors "github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/logger"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		defaults map[string]string
		provider Provider
		header   string
		want     string
		wantErr  string
	}{
		{"header wins", map[string]string{"gemini": "server-key"}, Gemini, "user-key", "user-key", ""},
		{"header trimmed", nil, Gemini, "  user-key \n", "user-key", ""},
		{"default used", map[string]string{"openai": "server-key"}, OpenAI, "", "server-key", ""},
		{"whitespace header is absent", map[string]string{"openai": "server-key"}, OpenAI, "   ", "server-key", ""},
		{"blank default is absent", map[string]string{"gemini": " "}, Gemini, "",
			"", "Gemini API key required. Please add your API key in settings."},
		{"other provider default ignored", map[string]string{"gemini": "g"}, OpenAI, "",
			"", "OpenAI API key required. Please add your API key in settings."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.defaults, logger.NewDefault("test"))
			got, err := r.Resolve(context.Background(), tt.provider, tt.header)
			if tt.wantErr != "" {
				appErr, ok := apperrors.AsAppError(err)
				if !ok || appErr.Code != apperrors.ErrCodeMissingCredential {
					t.Fatalf("expected MissingCredential, got %v", err)
				}
				if appErr.Message != tt.wantErr || appErr.HTTPStatus != 400 {
					t.Errorf("unexpected error %q (%d)", appErr.Message, appErr.HTTPStatus)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestKeyNeverLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
	r := NewResolver(map[string]string{"gemini": "server-secret"}, log)

	if _, err := r.Resolve(context.Background(), Gemini, "header-secret"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Resolve(context.Background(), Gemini, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "secret") {
		t.Errorf("key leaked into logs: %s", out)
	}
	if !strings.Contains(out, `"source":"header"`) || !strings.Contains(out, `"source":"default"`) {
		t.Errorf("expected source to be logged, got %s", out)
	}
}

func TestHasDefault(t *testing.T) {
	r := NewResolver(map[string]string{"openai": "k"}, logger.NewDefault("test"))
	if !r.HasDefault(OpenAI) || r.HasDefault(Gemini) {
		t.Error("unexpected HasDefault result")
	}
}
