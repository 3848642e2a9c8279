package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSession models.Session

func (s staticSession) Session() models.Session { return models.Session(s) }

// switchableSession lets a test change the session between requests.
type switchableSession struct{ s models.Session }

func (s *switchableSession) Session() models.Session { return s.s }

func newTestTransport(t *testing.T, url string, src SessionSource, opts ...Option) *Transport {
	t.Helper()
	tr, err := NewTransport(url, src, opts...)
	require.NoError(t, err)
	return tr
}

func TestBuildHeaders_WithSession(t *testing.T) {
	h := BuildHeaders(models.Session{Token: "T"}, "req-1")

	assert.Equal(t, "Bearer T", h.Get(AuthorizationHeader))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, "req-1", h.Get(RequestIDHeader))
}

func TestBuildHeaders_AnonymousOmitsAuthorization(t *testing.T) {
	h := BuildHeaders(models.Session{}, "")

	_, present := h[AuthorizationHeader]
	assert.False(t, present, "Authorization must be absent, not empty")
	_, present = h[RequestIDHeader]
	assert.False(t, present)
}

func TestNewTransport_ValidatesBaseURL(t *testing.T) {
	for _, bad := range []string{"localhost:8080", "ftp://example.com", "http://", "://nope"} {
		_, err := NewTransport(bad, nil)
		assert.Error(t, err, bad)
	}

	tr, err := NewTransport("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, tr.BaseURL())

	tr, err = NewTransport("https://api.example.com/v1/", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", tr.BaseURL())
}

func TestDo_ReadsSessionOnEveryRequest(t *testing.T) {
	var got []string
	var present []bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := r.Header["Authorization"]
		present = append(present, ok)
		if ok {
			got = append(got, v[0])
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	src := &switchableSession{}
	tr := newTestTransport(t, srv.URL, src)
	ctx := context.Background()

	require.NoError(t, tr.Do(ctx, http.MethodGet, "/health", nil, nil))
	src.s = models.Session{Token: "T1"}
	require.NoError(t, tr.Do(ctx, http.MethodGet, "/users", nil, nil))
	src.s = models.Session{}
	require.NoError(t, tr.Do(ctx, http.MethodDelete, "/users/1", nil, nil))

	assert.Equal(t, []bool{false, true, false}, present)
	assert.Equal(t, []string{"Bearer T1"}, got)
}

func TestDo_AssignsRequestID(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL, nil, withRequestIDs(func() string { return "fixed-id" }))
	require.NoError(t, tr.Do(context.Background(), http.MethodGet, "/health", nil, nil))
	assert.Equal(t, "fixed-id", seen)
}

func TestDo_StatusErrorKeepsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_credentials","message":"Invalid email or password"}`))
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL, nil)
	var out models.AuthResponse
	err := tr.Do(context.Background(), http.MethodPost, "/auth/login", models.LoginRequest{Email: "a", Password: "b"}, &out)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.JSONEq(t, `{"error":"invalid_credentials","message":"Invalid email or password"}`, string(se.Body))
	require.NotNil(t, se.Response)
	assert.Equal(t, "invalid_credentials", se.Response.Error)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Invalid email or password")
}

func TestDo_StatusErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL, nil)
	err := tr.Do(context.Background(), http.MethodGet, "/users", nil, nil)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, "upstream down", string(se.Body))
	assert.Nil(t, se.Response)
	assert.EqualError(t, err, "GET /users: status 502")
}

func TestDo_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1,`))
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL, nil)
	var u models.User
	err := tr.Do(context.Background(), http.MethodGet, "/users/1", nil, &u)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, http.StatusOK, de.StatusCode)
	assert.Equal(t, `{"id": 1,`, string(de.Body))
}

func TestDo_EmptyBodyWhenResultExpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL, nil)
	var u models.User
	err := tr.Do(context.Background(), http.MethodGet, "/users/1", nil, &u)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
}

func TestDo_NetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr := newTestTransport(t, url, nil)
	err := tr.Do(context.Background(), http.MethodGet, "/health", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_ContextCancelIsNotUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	tr := newTestTransport(t, srv.URL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := tr.Do(ctx, http.MethodGet, "/users", nil, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestWithTimeout_AppliesToClient(t *testing.T) {
	hc := &http.Client{}
	tr := newTestTransport(t, DefaultBaseURL, nil, WithHTTPClient(hc), WithTimeout(3*time.Second))
	assert.Same(t, hc, tr.httpClient)
	assert.Equal(t, 3*time.Second, hc.Timeout)

	tr = newTestTransport(t, DefaultBaseURL, nil, WithTimeout(0))
	assert.Zero(t, tr.httpClient.Timeout)
}
