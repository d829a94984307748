package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/audioviz/errors"
)

type textRequest struct {
	Text *string `json:"text" validate:"required"`
	Mode string  `json:"mode,omitempty" validate:"omitempty,oneof=short long"`
}

func ptr(s string) *string { return &s }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     textRequest
		wantErr string
	}{
		{"present text", textRequest{Text: ptr("A dog ran.")}, ""},
		{"empty text is allowed", textRequest{Text: ptr("")}, ""},
		{"missing text", textRequest{}, "text is required"},
		{"bad mode", textRequest{Text: ptr("x"), Mode: "huge"}, "mode must be one of: short long"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.req)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			appErr, ok := errors.AsAppError(err)
			if !ok || appErr.Code != errors.ErrCodeInvalidInput {
				t.Fatalf("expected INVALID_INPUT AppError, got %v", err)
			}
			if !strings.Contains(appErr.Message, tc.wantErr) {
				t.Errorf("expected message containing %q, got %q", tc.wantErr, appErr.Message)
			}
		})
	}
}
