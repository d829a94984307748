package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/kbukum/audioviz/component"
	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/provider"
)

// ErrNotStarted is returned by Component's Storage methods outside Start/Stop.
var ErrNotStarted = errors.New("storage: backend not started")

// Component wraps Storage and implements component.Component. It is itself
// a Storage that forwards to the backend created in Start, so consumers can
// be wired before the component starts.
type Component struct {
	mu      sync.RWMutex
	storage Storage
	cfg     Config
	log     *logger.Logger
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
	_ provider.Provider     = (*Component)(nil)
	_ Storage               = (*Component)(nil)
)

// NewComponent creates a storage component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("storage")}
}

// Storage returns the underlying Storage, or nil if not started.
func (c *Component) Storage() Storage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storage
}

func (c *Component) Name() string { return "storage" }

// IsAvailable reports whether the backend has been initialized.
func (c *Component) IsAvailable(_ context.Context) bool {
	return c.Storage() != nil
}

func (c *Component) Start(ctx context.Context) error {
	s, err := New(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.mu.Lock()
	c.storage = s
	c.mu.Unlock()
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	c.storage = nil
	c.mu.Unlock()
	return nil
}

// Health probes the backend with an existence check on a sentinel path.
func (c *Component) Health(ctx context.Context) component.Health {
	s := c.Storage()
	if s == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "storage not initialized"}
	}
	if _, err := s.Exists(ctx, ".health"); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("health probe failed: %v", err),
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	details := "provider=" + c.cfg.Provider
	switch c.cfg.Provider {
	case ProviderLocal:
		details += " path=" + c.cfg.BasePath
	case ProviderS3:
		details += " bucket=" + c.cfg.Bucket
	}
	return component.Description{Name: "Storage", Type: "storage", Details: details}
}

func (c *Component) backend() (Storage, error) {
	if s := c.Storage(); s != nil {
		return s, nil
	}
	return nil, ErrNotStarted
}

func (c *Component) Upload(ctx context.Context, path string, r io.Reader) error {
	s, err := c.backend()
	if err != nil {
		return err
	}
	return s.Upload(ctx, path, r)
}

func (c *Component) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	s, err := c.backend()
	if err != nil {
		return nil, err
	}
	return s.Download(ctx, path)
}

func (c *Component) Delete(ctx context.Context, path string) error {
	s, err := c.backend()
	if err != nil {
		return err
	}
	return s.Delete(ctx, path)
}

func (c *Component) Exists(ctx context.Context, path string) (bool, error) {
	s, err := c.backend()
	if err != nil {
		return false, err
	}
	return s.Exists(ctx, path)
}

func (c *Component) Stat(ctx context.Context, path string) (FileInfo, error) {
	s, err := c.backend()
	if err != nil {
		return FileInfo{}, err
	}
	return s.Stat(ctx, path)
}
