package httpclient

import (
	"net/http"
	"time"

	"github.com/kbukum/audioviz/logger"
)

// New returns an *http.Client for upstream SDKs. It is safe to share across
// requests and keys; nothing key-specific is stored in it.
func New(cfg Config, log *logger.Logger) (*http.Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost

	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	return &http.Client{
		Transport: &loggingTransport{
			next:      transport,
			userAgent: cfg.UserAgent,
			log:       log.WithComponent("httpclient"),
		},
		Timeout: cfg.Timeout,
	}, nil
}

type loggingTransport struct {
	next      http.RoundTripper
	userAgent string
	log       *logger.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	fields := logger.Fields(
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)
	log := t.log.WithContext(req.Context())
	switch {
	case err != nil:
		fields[logger.FieldError] = err.Error()
		log.Warn("upstream request failed", fields)
	case resp.StatusCode >= http.StatusBadRequest:
		fields[logger.FieldStatus] = resp.StatusCode
		log.Warn("upstream request returned error status", fields)
	default:
		fields[logger.FieldStatus] = resp.StatusCode
		log.Debug("upstream request", fields)
	}
	return resp, err
}
