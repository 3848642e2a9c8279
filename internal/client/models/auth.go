package models

import "time"

// AuthUser is the reduced identity returned on login/register.
type AuthUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// Session pairs an opaque bearer token with the identity it was issued for.
// The zero value is the anonymous session.
type Session struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// Valid reports whether s carries a token.
func (s Session) Valid() bool {
	return s.Token != ""
}

// SessionFromAuth builds the session persisted after a successful login or
// registration.
func SessionFromAuth(r AuthResponse) Session {
	return Session{Token: r.Token, User: r.User}
}
