// Package local implements storage.Storage on a local filesystem through
// afero, so tests can swap in an in-memory filesystem.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderLocal, func(_ context.Context, cfg storage.Config, _ *logger.Logger) (storage.Storage, error) {
		return NewStorage(afero.NewOsFs(), cfg.BasePath)
	})
}

// Storage implements storage.Storage using an afero filesystem.
type Storage struct {
	fs       afero.Fs
	basePath string
}

// NewStorage creates the base directory on fsys and returns a Storage
// rooted there.
func NewStorage(fsys afero.Fs, basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, errors.New("local: base_path is required")
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve base path: %w", err)
	}
	if err := fsys.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("storage: create base directory: %w", err)
	}
	return &Storage{fs: fsys, basePath: abs}, nil
}

// BasePath returns the absolute root directory.
func (s *Storage) BasePath() string { return s.basePath }

// resolve keeps every path inside basePath.
func (s *Storage) resolve(path string) string {
	return filepath.Join(s.basePath, filepath.Clean("/"+path))
}

// Upload writes data from reader to a local file. A partial file is removed
// when the copy fails.
func (s *Storage) Upload(_ context.Context, path string, reader io.Reader) error {
	fullPath := s.resolve(path)
	if err := s.fs.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return fmt.Errorf("storage: create directory: %w", err)
	}

	f, err := s.fs.Create(fullPath)
	if err != nil {
		return fmt.Errorf("storage: create file: %w", err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(fullPath)
		return fmt.Errorf("storage: write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage: close file: %w", err)
	}
	return nil
}

// Download returns a reader for the local file at the given path.
func (s *Storage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := s.fs.Open(s.resolve(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return nil, fmt.Errorf("storage: open file: %w", err)
	}
	return f, nil
}

// Delete removes a local file. Returns nil if the file does not exist.
func (s *Storage) Delete(_ context.Context, path string) error {
	if err := s.fs.Remove(s.resolve(path)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete file: %w", err)
	}
	return nil
}

// Exists checks whether a local file exists.
func (s *Storage) Exists(_ context.Context, path string) (bool, error) {
	ok, err := afero.Exists(s.fs, s.resolve(path))
	if err != nil {
		return false, fmt.Errorf("storage: stat file: %w", err)
	}
	return ok, nil
}

// Stat returns size, modification time and an extension-derived content type.
func (s *Storage) Stat(_ context.Context, path string) (storage.FileInfo, error) {
	info, err := s.fs.Stat(s.resolve(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.FileInfo{}, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return storage.FileInfo{}, fmt.Errorf("storage: stat file: %w", err)
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return storage.FileInfo{
		Path:         path,
		Size:         info.Size(),
		LastModified: info.ModTime(),
		ContentType:  ct,
	}, nil
}

var _ storage.Storage = (*Storage)(nil)
