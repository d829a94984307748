// Command audioviz serves the transcribe, summarize and visualize API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/audioviz/bootstrap"
	"github.com/kbukum/audioviz/config"
	"github.com/kbukum/audioviz/httpclient"
	"github.com/kbukum/audioviz/internal/api"
	"github.com/kbukum/audioviz/internal/credential"
	"github.com/kbukum/audioviz/internal/summarize"
	"github.com/kbukum/audioviz/internal/transcribe"
	"github.com/kbukum/audioviz/internal/upload"
	"github.com/kbukum/audioviz/internal/visualize"
	"github.com/kbukum/audioviz/llm"
	llmgemini "github.com/kbukum/audioviz/llm/gemini"
	llmopenai "github.com/kbukum/audioviz/llm/openai"
	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/observability"
	"github.com/kbukum/audioviz/server"
	"github.com/kbukum/audioviz/storage"
	_ "github.com/kbukum/audioviz/storage/local"
	_ "github.com/kbukum/audioviz/storage/s3"
	"github.com/kbukum/audioviz/transcription"
	trgemini "github.com/kbukum/audioviz/transcription/gemini"
)

func main() {
	var cfg AppConfig
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "audioviz: %v\n", err)
		os.Exit(1)
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audioviz: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), app); err != nil {
		app.Logger.Fatal("audioviz stopped", logger.Fields(logger.FieldError, err.Error()))
	}
}

func run(ctx context.Context, app *bootstrap.App[*AppConfig]) error {
	if _, err := setup(app); err != nil {
		return err
	}
	return app.Run(ctx)
}

// setup registers the components and every route. Routes go in before
// app.Run so the engine is complete by the time the server listens.
func setup(app *bootstrap.App[*AppConfig]) (*server.Server, error) {
	cfg := app.Cfg

	obs, err := observability.NewComponent(cfg.Observability, app.Logger)
	if err != nil {
		return nil, err
	}
	store := storage.NewComponent(cfg.Storage, app.Logger)
	srv := server.New(cfg.Server, app.Logger)

	if err := app.RegisterComponent(obs); err != nil {
		return nil, err
	}
	if err := app.RegisterComponent(store); err != nil {
		return nil, err
	}
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return nil, err
	}

	srv.ApplyMiddleware(obs.Metrics())
	srv.RegisterDefaultEndpoints(cfg.Name, app.Components.HealthAll)

	h, err := newHandler(cfg, app.Logger, store, obs.Metrics())
	if err != nil {
		return nil, err
	}
	h.Register(srv.GinEngine())
	return srv, nil
}

func newHandler(cfg *AppConfig, log *logger.Logger, store storage.Storage, metrics *observability.Metrics) (*api.Handler, error) {
	hc, err := httpclient.New(cfg.Providers.HTTP, log)
	if err != nil {
		return nil, err
	}
	gemini, openai, tr := cfg.Gemini, cfg.OpenAI, cfg.Transcription()
	gemini.HTTPClient, openai.HTTPClient, tr.HTTPClient = hc, hc, hc

	llmReg := llm.NewRegistry()
	llmgemini.Register(llmReg)
	llmopenai.Register(llmReg)

	trReg := transcription.NewRegistry()
	trgemini.Register(trReg)

	creds := credential.NewResolver(cfg.DefaultKeys(), log)
	log.Info("default api keys", logger.Fields(
		credential.Gemini.Name, creds.HasDefault(credential.Gemini),
		credential.OpenAI.Name, creds.HasDefault(credential.OpenAI),
	))

	h := api.New(api.Deps{
		Credentials: creds,
		Uploads:     upload.NewHandler(store, cfg.Upload, log),
		Transcriber: transcribe.NewService(trReg, transcribe.Options{
			Backend:     trgemini.Name,
			Label:       credential.Gemini.Label,
			Config:      tr,
			ServiceName: cfg.Name,
		}, log, metrics),
		Summarizer: summarize.NewService(llmReg, summarize.Options{
			Backend:     llmopenai.Name,
			Label:       credential.OpenAI.Label,
			Config:      openai,
			ServiceName: cfg.Name,
		}, log, metrics),
		Visualizer: visualize.NewService(llmReg, visualize.Options{
			Backend:     llmgemini.Name,
			Label:       credential.Gemini.Label,
			Config:      gemini,
			ServiceName: cfg.Name,
		}, log, metrics),
		Timeout: cfg.Providers.Timeout,
		Logger:  log,
	})
	return h, nil
}
