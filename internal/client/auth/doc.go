// Package auth holds the client's authentication context.
//
// State is the in-memory session that the HTTP transport reads on every
// request. Controller drives the transitions between anonymous and
// authenticated: it calls the service, persists the result to the session
// store and only then updates State and notifies subscribers.
package auth
