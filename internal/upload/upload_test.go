package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/afero"

	apperrors "github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/storage"
	"github.com/kbukum/audioviz/storage/local"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "error"}, "test", io.Discard)
}

func memStore(t *testing.T) storage.Storage {
	t.Helper()
	s, err := local.NewStorage(afero.NewMemMapFs(), "/staging")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"talk.MP3":         ".mp3",
		"memo.wav":         ".wav",
		"noext":            ".mp3",
		"":                 ".mp3",
		"dir.v2/recording": ".mp3",
		"archive.tar.webm": ".webm",
		"trailingdot.":     ".mp3",
	}
	for in, want := range tests {
		if got := Extension(in); got != want {
			t.Errorf("Extension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTempName(t *testing.T) {
	re := regexp.MustCompile(`^temp_[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\.wav$`)
	a, b := TempName(".wav"), TempName(".wav")
	if !re.MatchString(a) {
		t.Errorf("unexpected name %q", a)
	}
	if a == b {
		t.Error("names must be unique")
	}
}

func TestMIMEType(t *testing.T) {
	tests := []struct {
		declared, ext, want string
	}{
		{"audio/webm;codecs=opus", ".webm", "audio/webm"},
		{"", ".wav", "audio/wav"},
		{"application/octet-stream", ".m4a", "audio/mp4"},
		{"", ".unknownext", "audio/mpeg"},
	}
	for _, tt := range tests {
		if got := MIMEType(tt.declared, tt.ext); got != tt.want {
			t.Errorf("MIMEType(%q, %q) = %q, want %q", tt.declared, tt.ext, got, tt.want)
		}
	}
}

func TestStoreAndRelease(t *testing.T) {
	ctx := context.Background()
	store := memStore(t)
	h := NewHandler(store, Config{}, testLogger())

	audio, err := h.Store(ctx, "talk.wav", "", strings.NewReader("RIFFdata"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if audio.Size != 8 || audio.Extension != ".wav" || audio.MIMEType != "audio/wav" || audio.OriginalName != "talk.wav" {
		t.Errorf("unexpected audio %+v", audio)
	}
	if !strings.HasPrefix(audio.Name, "temp_") {
		t.Errorf("unexpected name %q", audio.Name)
	}

	rc, err := audio.Open(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "RIFFdata" {
		t.Errorf("unexpected content %q", data)
	}

	if err := audio.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, _ := store.Exists(ctx, audio.Name); ok {
		t.Error("file should be removed on release")
	}
	if err := audio.Release(ctx); err != nil {
		t.Errorf("second release should be a no-op: %v", err)
	}
}

func TestReleaseAfterCancel(t *testing.T) {
	store := memStore(t)
	h := NewHandler(store, Config{}, testLogger())
	audio, err := h.Store(context.Background(), "a.mp3", "audio/mpeg", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := audio.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, _ := store.Exists(context.Background(), audio.Name); ok {
		t.Error("file should be removed even after cancellation")
	}
}

func TestKeepFiles(t *testing.T) {
	ctx := context.Background()
	store := memStore(t)
	h := NewHandler(store, Config{KeepFiles: true}, testLogger())

	audio, err := h.Store(ctx, "a.mp3", "", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	if err := audio.Release(ctx); err != nil {
		t.Fatal(err)
	}
	if ok, _ := store.Exists(ctx, audio.Name); !ok {
		t.Error("file should be kept")
	}
}

func TestEmptyUpload(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	store, _ := local.NewStorage(fsys, "/staging")
	h := NewHandler(store, Config{}, testLogger())

	_, err := h.Store(ctx, "empty.mp3", "", strings.NewReader(""))
	if !apperrors.HasCode(err, apperrors.ErrCodeEmptyUpload) {
		t.Fatalf("expected EmptyUpload, got %v", err)
	}
	entries, _ := afero.ReadDir(fsys, "/staging")
	if len(entries) != 0 {
		t.Errorf("empty file should be removed, found %d entries", len(entries))
	}
}

type failingStore struct {
	storage.Storage
}

func (failingStore) Upload(context.Context, string, io.Reader) error {
	return errors.New("disk full")
}

func TestStorageError(t *testing.T) {
	h := NewHandler(failingStore{}, Config{}, testLogger())
	_, err := h.Store(context.Background(), "a.mp3", "", strings.NewReader("x"))
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeStorage || appErr.Message != "disk full" {
		t.Fatalf("expected StorageError with cause message, got %v", err)
	}
}

func TestSaveMultipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "clip.ogg")
	_, _ = part.Write([]byte("OggS"))
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/transcribe", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	fh := req.MultipartForm.File["file"][0]

	h := NewHandler(memStore(t), Config{DefaultExt: "wav"}, testLogger())
	audio, err := h.Save(context.Background(), fh)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	defer audio.Release(context.Background())
	if audio.Extension != ".ogg" || audio.MIMEType != "audio/ogg" || audio.Size != 4 {
		t.Errorf("unexpected audio %+v", audio)
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{DefaultExt: "wav"}
	c.ApplyDefaults()
	if c.DefaultExt != ".wav" {
		t.Errorf("expected .wav, got %q", c.DefaultExt)
	}
	var d Config
	d.ApplyDefaults()
	if d.DefaultExt != ".mp3" {
		t.Errorf("expected .mp3, got %q", d.DefaultExt)
	}
}
