package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/audioviz/bootstrap"
	"github.com/kbukum/audioviz/component"
	apperrors "github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/testutil"
)

func TestSetup_RoutesBeforeServing(t *testing.T) {
	cfg := AppConfig{}
	cfg.Storage.BasePath = t.TempDir()
	app, err := bootstrap.NewApp(&cfg, bootstrap.WithLogger(testutil.Logger()))
	if err != nil {
		t.Fatal(err)
	}
	app.Cfg.Server.Host = "127.0.0.1"
	app.Cfg.Server.Port = 0

	srv, err := setup(app)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	want := map[string]bool{
		"GET /":            false,
		"POST /transcribe": false,
		"POST /summarize":  false,
		"POST /visualize":  false,
		"GET /health":      false,
	}
	for _, r := range srv.GinEngine().Routes() {
		if _, ok := want[r.Method+" "+r.Path]; ok {
			want[r.Method+" "+r.Path] = true
		}
	}
	for route, found := range want {
		if !found {
			t.Errorf("route %s not registered by setup", route)
		}
	}

	ctx := context.Background()
	for _, h := range app.Components.HealthAll(ctx) {
		if h.Name == "http-server" && h.Status != component.StatusUnhealthy {
			t.Fatalf("server should not be serving before start, got %s", h.Status)
		}
	}

	if err := app.Components.StartAll(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer app.Components.StopAll(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post("http://"+srv.Addr()+"/summarize", "application/json", strings.NewReader(`{"text":"x"}`))
			if err != nil {
				t.Errorf("post: %v", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400 without a key, got %d", resp.StatusCode)
				return
			}
			var body apperrors.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Errorf("decode: %v", err)
				return
			}
			if body.Code != apperrors.ErrCodeMissingCredential {
				t.Errorf("unexpected error body %+v", body)
			}
		}()
	}
	wg.Wait()
}
