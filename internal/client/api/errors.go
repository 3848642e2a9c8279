package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrEmptyID      = errors.New("empty user id")
)

// StatusError is returned for any non-2xx response. Body is kept verbatim;
// Response is set when the body parsed as the service's error envelope.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Response   *models.ErrorResponse
}

func newStatusError(method, path string, code int, body []byte) *StatusError {
	e := &StatusError{Method: method, Path: path, StatusCode: code, Body: body}

	var er models.ErrorResponse
	if json.Unmarshal(body, &er) == nil && (er.Error != "" || er.Message != "") {
		e.Response = &er
	}
	return e
}

func (e *StatusError) Error() string {
	if e.Response != nil && e.Response.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Response.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// DecodeError means a 2xx response body could not be decoded.
type DecodeError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: decode response (status %d): %v", e.Method, e.Path, e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
