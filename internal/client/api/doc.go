// Package api is the HTTP access layer for the user-directory service.
//
// # Overview
//
// The package provides:
//  1. Transport: one shared *http.Client bound to a base URL. Every request
//     gets its headers from BuildHeaders, which takes the current session
//     explicitly: Authorization is set to "Bearer <token>" when the session
//     has a token and omitted otherwise.
//  2. Client: typed operations (Login, Register, GetUsers, GetUser,
//     CreateUser, UpdateUser, DeleteUser, Health), each a single HTTP call
//     with no retries and no caching.
//
// # Error Handling
//
// Errors are never swallowed or reinterpreted:
//   - no response at all: wraps ErrUnavailable and the cause;
//   - non-2xx status: *StatusError carrying status code and raw body;
//     it also matches ErrUnauthorized (401, 403) and ErrNotFound (404)
//     through errors.Is;
//   - malformed 2xx body: *DecodeError.
//
// An expired token is not detected here; it shows up as a StatusError on
// the next authorized call.
package api
