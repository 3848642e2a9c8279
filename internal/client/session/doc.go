// Package session persists the client's authentication session.
//
// The session (bearer token plus the reduced user identity) lives in a local
// SQLite file, JSON-encoded under a single fixed key of the metadata table.
// A missing key means the user is anonymous. Every Set and Clear is committed
// before it returns, so a restart never sees a value that was not written.
//
// The token is opaque here: it is stored and returned byte for byte and
// never parsed or validated.
//
// Schema is created with embedded goose migrations; see Open and
// RunMigrations.
package session
