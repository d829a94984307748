// Package upload stages an uploaded audio file in storage under a random
// name and hands back a handle that removes it again on Release.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/storage"
)

// DefaultExtension is used when the original filename has none.
const DefaultExtension = ".mp3"

const fallbackMIME = "audio/mpeg"

var audioTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/ogg",
	".webm": "audio/webm",
	".flac": "audio/flac",
	".aiff": "audio/aiff",
}

// Config controls staging behaviour.
type Config struct {
	// KeepFiles leaves staged files in storage after the request. Debug only.
	KeepFiles bool `yaml:"keep_files" mapstructure:"keep_files"`
	// DefaultExt replaces DefaultExtension when set.
	DefaultExt string `yaml:"default_ext" mapstructure:"default_ext"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.DefaultExt == "" {
		c.DefaultExt = DefaultExtension
	}
	if !strings.HasPrefix(c.DefaultExt, ".") {
		c.DefaultExt = "." + c.DefaultExt
	}
}

// Extension returns the lowercase extension of filename including the dot,
// or DefaultExtension when there is none.
func Extension(filename string) string {
	return extensionOr(filename, DefaultExtension)
}

func extensionOr(filename, def string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || ext == "." {
		return def
	}
	return ext
}

// TempName returns a collision-free staging name: temp_<uuid><ext>.
func TempName(ext string) string {
	return "temp_" + uuid.NewString() + ext
}

// MIMEType returns declared unless it is empty or generic, in which case
// the type is inferred from ext.
func MIMEType(declared, ext string) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "" && mt != "application/octet-stream" {
		return mt
	}
	if mt, ok := audioTypes[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return fallbackMIME
}

// Handler stages uploads in a storage backend.
type Handler struct {
	store storage.Storage
	cfg   Config
	log   *logger.Logger
}

// NewHandler creates a Handler over store.
func NewHandler(store storage.Storage, cfg Config, log *logger.Logger) *Handler {
	cfg.ApplyDefaults()
	return &Handler{store: store, cfg: cfg, log: log.WithComponent("upload")}
}

// Save stores the multipart file. An empty file is removed and reported as
// EmptyUpload; write and stat failures are StorageError.
func (h *Handler) Save(ctx context.Context, fh *multipart.FileHeader) (*Audio, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.StorageError(err)
	}
	defer f.Close()

	return h.Store(ctx, fh.Filename, fh.Header.Get("Content-Type"), f)
}

// Store writes r under a fresh temp name and reads the size back.
func (h *Handler) Store(ctx context.Context, filename, contentType string, r io.Reader) (*Audio, error) {
	ext := extensionOr(filename, h.cfg.DefaultExt)
	name := TempName(ext)
	log := h.log.WithContext(ctx)

	if err := h.store.Upload(ctx, name, r); err != nil {
		return nil, errors.StorageError(err)
	}

	info, err := h.store.Stat(ctx, name)
	if err != nil {
		h.remove(ctx, name)
		return nil, errors.StorageError(err)
	}
	log.Info("saved upload", logger.Fields("file", name, "size_bytes", info.Size))

	if info.Size == 0 {
		h.remove(ctx, name)
		return nil, errors.EmptyUpload()
	}

	return &Audio{
		OriginalName: filename,
		Extension:    ext,
		Name:         name,
		Size:         info.Size,
		MIMEType:     MIMEType(contentType, ext),
		store:        h.store,
		keep:         h.cfg.KeepFiles,
		log:          h.log,
	}, nil
}

func (h *Handler) remove(ctx context.Context, name string) {
	if err := h.store.Delete(context.WithoutCancel(ctx), name); err != nil {
		h.log.WithContext(ctx).Warn("failed to remove staged file", logger.Fields("file", name, logger.FieldError, err.Error()))
	}
}

// Audio is a staged upload. Name is also its storage key.
type Audio struct {
	OriginalName string
	Extension    string
	Name         string
	Size         int64
	MIMEType     string

	store    storage.Storage
	keep     bool
	log      *logger.Logger
	once     sync.Once
	released error
}

// Open returns a reader over the staged bytes.
func (a *Audio) Open(ctx context.Context) (io.ReadCloser, error) {
	rc, err := a.store.Download(ctx, a.Name)
	if err != nil {
		return nil, errors.StorageError(err)
	}
	return rc, nil
}

// Release deletes the staged file unless files are kept. It runs once; later
// calls return the first result. It ignores ctx cancellation so cleanup
// still happens after a timeout.
func (a *Audio) Release(ctx context.Context) error {
	a.once.Do(func() {
		log := a.log.WithContext(ctx)
		if a.keep {
			log.Info("kept staged file", logger.Fields("file", a.Name))
			return
		}
		if err := a.store.Delete(context.WithoutCancel(ctx), a.Name); err != nil {
			a.released = fmt.Errorf("release %s: %w", a.Name, err)
			log.Warn("failed to remove staged file", logger.Fields("file", a.Name, logger.FieldError, err.Error()))
			return
		}
		log.Debug("removed staged file", logger.Fields("file", a.Name))
	})
	return a.released
}
