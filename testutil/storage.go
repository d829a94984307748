package testutil

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/spf13/afero"

	"github.com/kbukum/audioviz/component"
	"github.com/kbukum/audioviz/storage"
	"github.com/kbukum/audioviz/storage/local"
)

const memBasePath = "/staging"

// MemStorage is a staging storage on an in-memory filesystem.
type MemStorage struct {
	mu    sync.Mutex
	fs    afero.Fs
	store *local.Storage
}

var _ TestComponent = (*MemStorage)(nil)

// NewMemStorage returns an empty in-memory storage. It is usable before
// Start.
func NewMemStorage() *MemStorage {
	m := &MemStorage{}
	m.init()
	return m
}

func (m *MemStorage) init() {
	m.fs = afero.NewMemMapFs()
	s, err := local.NewStorage(m.fs, memBasePath)
	if err != nil {
		panic(fmt.Sprintf("testutil: in-memory storage: %v", err))
	}
	m.store = s
}

// Storage returns the backend.
func (m *MemStorage) Storage() storage.Storage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store
}

// Files returns the sorted names currently staged.
func (m *MemStorage) Files() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, err := afero.ReadDir(m.fs, memBasePath)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names
}

func (m *MemStorage) Name() string                  { return "mem-storage" }
func (m *MemStorage) Start(_ context.Context) error { return nil }
func (m *MemStorage) Stop(_ context.Context) error  { return nil }
func (m *MemStorage) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	return nil
}

func (m *MemStorage) Health(_ context.Context) component.Health {
	return component.Health{Name: m.Name(), Status: component.StatusHealthy}
}

// Snapshot copies every staged file's content.
func (m *MemStorage) Snapshot(_ context.Context) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, err := afero.ReadDir(m.fs, memBasePath)
	if err != nil {
		return nil, err
	}
	snap := make(map[string][]byte, len(entries))
	for _, e := range entries {
		data, err := afero.ReadFile(m.fs, memBasePath+"/"+e.Name())
		if err != nil {
			return nil, err
		}
		snap[e.Name()] = data
	}
	return snap, nil
}

// Restore replaces the staged files with a snapshot.
func (m *MemStorage) Restore(_ context.Context, snapshot interface{}) error {
	files, ok := snapshot.(map[string][]byte)
	if !ok {
		return fmt.Errorf("testutil: unexpected snapshot type %T", snapshot)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, name := range slices.Sorted(maps.Keys(files)) {
		if err := afero.WriteFile(m.fs, memBasePath+"/"+name, files[name], 0o600); err != nil {
			return err
		}
	}
	return nil
}
