package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Port)
	}
	if cfg.MaxBodySize != "50MB" {
		t.Errorf("expected 50MB body limit, got %q", cfg.MaxBodySize)
	}
	if len(cfg.CORS.AllowedOrigins) != 3 {
		t.Errorf("expected 3 default origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.CORS.AllowCredentials {
		t.Error("default origins should allow credentials")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	bad := Config{Port: 70000}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for out-of-range port")
	}
	wildcard := Config{CORS: cfg.CORS}
	wildcard.CORS.AllowedOrigins = []string{"*"}
	wildcard.CORS.AllowCredentials = true
	if err := wildcard.Validate(); err == nil {
		t.Error("expected error for wildcard origin with credentials")
	}
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody apperrors.ErrorResponse
	}{
		{
			name:     "app error",
			err:      apperrors.MissingCredential("Gemini"),
			wantCode: http.StatusBadRequest,
			wantBody: apperrors.ErrorResponse{
				Detail: "Gemini API key required. Please add your API key in settings.",
				Code:   apperrors.ErrCodeMissingCredential,
			},
		},
		{
			name:     "wrapped app error",
			err:      fmt.Errorf("handler: %w", apperrors.EmptyUpload()),
			wantCode: http.StatusBadRequest,
			wantBody: apperrors.ErrorResponse{Detail: "Uploaded file is empty", Code: apperrors.ErrCodeEmptyUpload},
		},
		{
			name:     "body too large",
			err:      &http.MaxBytesError{Limit: 10},
			wantCode: http.StatusRequestEntityTooLarge,
			wantBody: apperrors.ErrorResponse{Detail: "Request body too large", Code: apperrors.ErrCodeInvalidInput},
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("disk on fire"),
			wantCode: http.StatusInternalServerError,
			wantBody: apperrors.ErrorResponse{Detail: "disk on fire", Code: apperrors.ErrCodeInternal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)
			c.Request = httptest.NewRequest(http.MethodPost, "/", http.NoBody)

			RespondWithError(c, tt.err)

			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rr.Code)
			}
			var got apperrors.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if got != tt.wantBody {
				t.Errorf("expected %+v, got %+v", tt.wantBody, got)
			}
			if len(c.Errors) != 1 {
				t.Errorf("expected error attached to context, got %d", len(c.Errors))
			}
		})
	}
}

func TestServerLifecycle(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", Port: 0}
	cfg.ApplyDefaults()
	cfg.Port = 0

	srv := New(cfg, logger.NewWithWriter(&logger.Config{Level: "error"}, "test", io.Discard))
	srv.ApplyMiddleware(nil)
	srv.RegisterDefaultEndpoints("audioviz", nil)
	srv.GinEngine().GET("/", func(c *gin.Context) {
		RespondOK(c, gin.H{"message": "ok"})
	})

	comp := NewComponent(srv)
	ctx := context.Background()
	if h := comp.Health(ctx); h.Status != "unhealthy" {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer comp.Stop(ctx)

	if h := comp.Health(ctx); h.Status != "healthy" {
		t.Errorf("expected healthy after start, got %s", h.Status)
	}
	if !strings.Contains(comp.Describe().Details, "routes") {
		t.Errorf("unexpected description %q", comp.Describe().Details)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("expected request id header from middleware")
	}

	if err := comp.Stop(ctx); err != nil {
		t.Errorf("stop: %v", err)
	}
	if err := comp.Stop(ctx); err != nil {
		t.Errorf("second stop should be a no-op: %v", err)
	}
}
