// Package api exposes the transcribe, summarize and visualize operations
// over HTTP. Every handler resolves its credential before reading the body.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/audioviz/errors"
	"github.com/kbukum/audioviz/internal/credential"
	"github.com/kbukum/audioviz/internal/upload"
	"github.com/kbukum/audioviz/internal/visualize"
	"github.com/kbukum/audioviz/logger"
	"github.com/kbukum/audioviz/server"
	"github.com/kbukum/audioviz/validation"
)

// RootMessage is served on GET /.
const RootMessage = "Audio Visualizer Backend is running"

// DefaultTimeout bounds each upstream call when none is configured.
const DefaultTimeout = 120 * time.Second

// Transcriber turns staged audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, key string, audio *upload.Audio) (string, error)
}

// Summarizer summarizes text.
type Summarizer interface {
	Summarize(ctx context.Context, key, text string) (string, error)
}

// Visualizer builds an infographic blueprint from text.
type Visualizer interface {
	Visualize(ctx context.Context, key, text string) (visualize.Result, error)
}

// Deps are the collaborators of Handler.
type Deps struct {
	Credentials *credential.Resolver
	Uploads     *upload.Handler
	Transcriber Transcriber
	Summarizer  Summarizer
	Visualizer  Visualizer
	// Timeout bounds each upstream call. Zero means DefaultTimeout.
	Timeout time.Duration
	Logger  *logger.Logger
}

// Handler serves the API routes.
type Handler struct {
	deps Deps
	log  *logger.Logger
}

// New creates a Handler.
func New(deps Deps) *Handler {
	if deps.Timeout <= 0 {
		deps.Timeout = DefaultTimeout
	}
	return &Handler{deps: deps, log: deps.Logger.WithComponent("api")}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.root)
	r.POST("/transcribe", h.transcribe)
	r.POST("/summarize", h.summarize)
	r.POST("/visualize", h.visualize)
}

// TextRequest is the body of /summarize and /visualize. Text may be empty
// but must be present.
type TextRequest struct {
	Text *string `json:"text" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TranscriptResponse struct {
	Transcript string `json:"transcript"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type VisualizationResponse struct {
	Data any `json:"data"`
}

func (h *Handler) root(c *gin.Context) {
	server.RespondOK(c, MessageResponse{Message: RootMessage})
}

func (h *Handler) transcribe(c *gin.Context) {
	ctx := c.Request.Context()
	key, err := h.deps.Credentials.Resolve(ctx, credential.Gemini, c.GetHeader(credential.Gemini.Header))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		server.RespondWithError(c, formError(err))
		return
	}
	h.log.WithContext(ctx).Info("received upload", logger.Fields(
		"filename", fh.Filename,
		"content_type", fh.Header.Get("Content-Type"),
	))

	audio, err := h.deps.Uploads.Save(ctx, fh)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	defer audio.Release(ctx)

	callCtx, cancel := context.WithTimeout(ctx, h.deps.Timeout)
	defer cancel()

	text, err := h.deps.Transcriber.Transcribe(callCtx, key, audio)
	if err != nil {
		server.RespondWithError(c, errors.FromUpstream(credential.Gemini.Label, err))
		return
	}
	server.RespondOK(c, TranscriptResponse{Transcript: text})
}

func (h *Handler) summarize(c *gin.Context) {
	ctx := c.Request.Context()
	key, err := h.deps.Credentials.Resolve(ctx, credential.OpenAI, c.GetHeader(credential.OpenAI.Header))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	text, err := bindText(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, h.deps.Timeout)
	defer cancel()

	summary, err := h.deps.Summarizer.Summarize(callCtx, key, text)
	if err != nil {
		server.RespondWithError(c, errors.FromUpstream(credential.OpenAI.Label, err))
		return
	}
	server.RespondOK(c, SummaryResponse{Summary: summary})
}

func (h *Handler) visualize(c *gin.Context) {
	ctx := c.Request.Context()
	key, err := h.deps.Credentials.Resolve(ctx, credential.Gemini, c.GetHeader(credential.Gemini.Header))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	text, err := bindText(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, h.deps.Timeout)
	defer cancel()

	res, err := h.deps.Visualizer.Visualize(callCtx, key, text)
	if err != nil {
		server.RespondWithError(c, errors.FromUpstream(credential.Gemini.Label, err))
		return
	}
	server.RespondOK(c, VisualizationResponse{Data: res.Data()})
}

func bindText(c *gin.Context) (string, error) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return "", err
		}
		return "", errors.InvalidInput("body", "malformed JSON body")
	}
	if err := validation.Validate(req); err != nil {
		return "", err
	}
	return *req.Text, nil
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return err
	}
	return errors.InvalidInput("file", "file is required")
}
