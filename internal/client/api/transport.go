package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "http://localhost:8080"

	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
)

// SessionSource yields the session to authorize the next request with.
// It is consulted once per request.
type SessionSource interface {
	Session() models.Session
}

type anonymousSource struct{}

func (anonymousSource) Session() models.Session { return models.Session{} }

// BuildHeaders returns the headers for one outgoing request. Authorization
// is present only when s carries a token.
func BuildHeaders(s models.Session, requestID string) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	if requestID != "" {
		h.Set(RequestIDHeader, requestID)
	}
	if s.Valid() {
		h.Set(AuthorizationHeader, "Bearer "+s.Token)
	}
	return h
}

type Transport struct {
	baseURL      string
	httpClient   *http.Client
	sessions     SessionSource
	log          logging.Logger
	newRequestID func() string
}

type Option func(*Transport)

// WithHTTPClient replaces the underlying client. Apply it before WithTimeout.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) { t.httpClient = c }
}

// WithTimeout bounds every request. Zero keeps the client's own default.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.httpClient.Timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(t *Transport) { t.log = l }
}

func withRequestIDs(fn func() string) Option {
	return func(t *Transport) { t.newRequestID = fn }
}

// NewTransport validates baseURL and builds a Transport. A nil sessions
// source sends every request anonymously.
func NewTransport(baseURL string, sessions SessionSource, opts ...Option) (*Transport, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: want http(s)://host[:port]", baseURL)
	}
	if sessions == nil {
		sessions = anonymousSource{}
	}

	t := &Transport{
		baseURL:      strings.TrimRight(u.String(), "/"),
		httpClient:   &http.Client{},
		sessions:     sessions,
		log:          logging.Nop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Do sends one request. in, when non-nil, is JSON-encoded as the body; out,
// when non-nil, receives the decoded 2xx body.
func (t *Transport) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}

	reqID := t.newRequestID()
	req.Header = BuildHeaders(t.sessions.Session(), reqID)
	log := t.log.With("request_id", reqID, "method", method, "path", path)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s response: %w", ErrUnavailable, method, path, err)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(method, path, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &DecodeError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: raw, Err: errors.New("empty body")}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: raw, Err: err}
	}
	return nil
}
