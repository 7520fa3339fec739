package jira

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dt-pm-tools/testcase-pipeline/internal/config"
	"github.com/dt-pm-tools/testcase-pipeline/internal/remote"
)

// Session is a validated, reusable HTTP context for one pipeline run.
// It carries the base URL, Basic credentials, and the fixed header set
// every Atlassian call needs. Read-only after Open; safe to share
// within the run.
type Session struct {
	baseURL    string
	authHeader string
	headers    map[string]string
	httpClient *http.Client
	logger     *zap.Logger
}

// Open authenticates against the JIRA base URL with a "who am I" probe
// and returns a Session on HTTP 200. Any other status, or a transport
// failure, means the configuration is unusable; dependent components
// must not retry it.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	creds := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.Token))
	s := &Session{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		authHeader: "Basic " + creds,
		headers: map[string]string{
			"Accept":               "application/json",
			"Content-Type":         "application/json",
			"X-Atlassian-Token":    "no-check",
			"X-QMetry-API-Key":     cfg.QMetryAPIKey,
			"X-QMetry-Project-Key": cfg.QMetryProjectKey,
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}

	if err := s.Probe(ctx); err != nil {
		return nil, err
	}
	logger.Debug("session authenticated", zap.String("base_url", s.baseURL))
	return s, nil
}

// Probe issues the lightweight authentication check. The remote
// requires a fresh probe immediately before state-changing plugin
// calls, so the publisher calls this again before creating folders.
func (s *Session) Probe(ctx context.Context) error {
	const op = "jira: auth probe"

	req, err := s.NewRequest(ctx, http.MethodGet, "/rest/api/2/myself", nil)
	if err != nil {
		return remote.NewConfigurationError(op, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return remote.NewTransientError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return remote.NewAuthError(op, resp.StatusCode, string(body))
	}
	return nil
}

// NewRequest builds a request against the session base URL with the
// auth header and fixed header set attached.
func (s *Session) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", s.authHeader)
	for k, v := range s.headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	return req, nil
}

// Do executes a request on the session's client.
func (s *Session) Do(req *http.Request) (*http.Response, error) {
	return s.httpClient.Do(req)
}

// BaseURL returns the trimmed remote base URL.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// Logger returns the session's logger for components that share it.
func (s *Session) Logger() *zap.Logger {
	return s.logger
}
