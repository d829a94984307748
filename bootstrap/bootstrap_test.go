package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/audioviz/component"
	"github.com/kbukum/audioviz/config"
	"github.com/kbukum/audioviz/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	health   component.Health
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	*m.events = append(*m.events, "start:"+m.name)
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	*m.events = append(*m.events, "stop:"+m.name)
	return nil
}
func (m *mockComponent) Health(ctx context.Context) component.Health { return m.health }

func quietLogger() *logger.Logger {
	var buf bytes.Buffer
	return logger.NewWithWriter(&logger.Config{Level: "error"}, "test", &buf)
}

func newTestApp(t *testing.T) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "audioviz", Version: "1.0.0"}}
	app, err := NewApp(cfg, WithLogger(quietLogger()), WithGracefulTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func TestNewAppAppliesDefaults(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "audioviz" || app.Version != "1.0.0" {
		t.Errorf("unexpected app identity %q %q", app.Name, app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected development default, got %q", app.Cfg.Environment)
	}
	if app.gracefulTimeout != time.Second {
		t.Errorf("expected graceful timeout option to apply, got %v", app.gracefulTimeout)
	}
}

func TestNewAppValidation(t *testing.T) {
	_, err := NewApp(&testConfig{}, WithLogger(quietLogger()))
	if err == nil || !strings.Contains(err.Error(), "config.name is required") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRunLifecycleOrder(t *testing.T) {
	app := newTestApp(t)
	var events []string
	healthy := component.Health{Name: "storage", Status: component.StatusHealthy}
	if err := app.RegisterComponent(&mockComponent{name: "storage", health: healthy, events: &events}); err != nil {
		t.Fatalf("register: %v", err)
	}

	app.OnStart(func(ctx context.Context) error { events = append(events, "onStart"); return nil })
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		events = append(events, "configure")
		return nil
	})
	app.OnReady(func(ctx context.Context) error { events = append(events, "onReady"); return nil })
	app.OnStop(func(ctx context.Context) error { events = append(events, "onStop"); return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"start:storage", "onStart", "configure", "onReady", "onStop", "stop:storage"}
	if !slices.Equal(events, want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

func TestRunStopsComponentsWhenConfigureFails(t *testing.T) {
	app := newTestApp(t)
	var events []string
	_ = app.RegisterComponent(&mockComponent{name: "storage", events: &events})
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		return fmt.Errorf("routes broke")
	})

	err := app.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "routes broke") {
		t.Fatalf("expected configure error, got %v", err)
	}
	if !slices.Contains(events, "stop:storage") {
		t.Errorf("expected storage to be stopped, got %v", events)
	}
}

func TestReadyCheckReportsUnhealthy(t *testing.T) {
	app := newTestApp(t)
	var events []string
	_ = app.RegisterComponent(&mockComponent{
		name:   "storage",
		health: component.Health{Name: "storage", Status: component.StatusUnhealthy, Message: "dir missing"},
		events: &events,
	})
	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "storage=unhealthy(dir missing)") {
		t.Fatalf("expected unhealthy report, got %v", err)
	}
}

func TestHookErrorIsIndexed(t *testing.T) {
	err := runHooks(context.Background(), []Hook{
		func(context.Context) error { return nil },
		func(context.Context) error { return fmt.Errorf("bad") },
	})
	if err == nil || err.Error() != "hook 1: bad" {
		t.Fatalf("unexpected error %v", err)
	}
}
