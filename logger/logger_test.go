package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func jsonLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: "json"}
	return NewWithWriter(cfg, "audioviz", &buf), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return m
}

func TestNewWithWriter_FieldsAndService(t *testing.T) {
	log, buf := jsonLogger(t, "info")
	log.Info("stored upload", Fields("size", 42, "name", "temp_x.mp3"))

	m := decodeLine(t, buf)
	if m["message"] != "stored upload" {
		t.Errorf("unexpected message %v", m["message"])
	}
	if m[FieldService] != "audioviz" {
		t.Errorf("expected service tag, got %v", m[FieldService])
	}
	if m["size"] != float64(42) {
		t.Errorf("expected size field, got %v", m["size"])
	}
}

func TestLevelFiltering(t *testing.T) {
	log, buf := jsonLogger(t, "warn")
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}
	log.Warn("shown")
	if buf.Len() == 0 {
		t.Error("expected warn to be written")
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	log, buf := jsonLogger(t, "bogus")
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug filtered at info, got %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	log, buf := jsonLogger(t, "info")
	log.WithComponent("upload").Info("x")
	if m := decodeLine(t, buf); m[FieldComponent] != "upload" {
		t.Errorf("expected component upload, got %v", m[FieldComponent])
	}
}

func TestWithContext_RequestID(t *testing.T) {
	log, buf := jsonLogger(t, "info")
	ctx := ContextWithRequestID(context.Background(), "req-1")
	log.WithContext(ctx).Info("x")
	if m := decodeLine(t, buf); m[FieldRequestID] != "req-1" {
		t.Errorf("expected request_id, got %v", m[FieldRequestID])
	}

	if got := log.WithContext(context.Background()); got != log {
		t.Error("expected same logger when context carries no request id")
	}
}

func TestWithError(t *testing.T) {
	log, buf := jsonLogger(t, "info")
	log.WithError(errors.New("boom")).Error("failed")
	if m := decodeLine(t, buf); m["error"] != "boom" {
		t.Errorf("expected error field, got %v", m["error"])
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backend.log")
	cfg := &Config{Level: "info", Format: "json", Output: "stderr", File: path}
	New(cfg, "audioviz").Info("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("expected message in file, got %q", data)
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	log, buf := jsonLogger(t, "info")
	SetGlobalLogger(log)
	Info("global")
	if !strings.Contains(buf.String(), "global") {
		t.Errorf("expected global logger to be used, got %q", buf.String())
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json", Output: "stdout"}, false},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}, true},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "syslog"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("wantErr=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFieldsHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("unexpected fields %v", f)
	}
	if ErrorFields("op", errors.New("x"))[FieldError] != "x" {
		t.Error("expected error field")
	}
	if DurationFields("op", 2*time.Second)[FieldDuration] != int64(2000) {
		t.Error("expected duration in ms")
	}
}
