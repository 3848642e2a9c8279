// Package fakeapi is an in-memory stand-in for the user-directory service,
// served over httptest so client code can be exercised over real HTTP.
// It is test tooling only.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Request is what the fake saw on the wire.
type Request struct {
	Method        string
	Path          string
	Authorization string
	HasAuth       bool
	RequestID     string
}

type account struct {
	user     models.AuthUser
	password string
}

type failure struct {
	status int
	body   string
}

type Server struct {
	*httptest.Server

	mu          sync.Mutex
	requireAuth bool
	accounts map[string]account
	tokens   map[string]string
	users    []models.User
	requests []Request
	failures map[string]failure
	health   models.HealthStatus
}

// New starts a fake and closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		requireAuth: true,
		accounts:    make(map[string]account),
		tokens:      make(map[string]string),
		failures:    make(map[string]failure),
		health:      models.HealthStatus{Status: "ok", Service: "userdir-fake", Version: "0.1.0"},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.injectFailure)

	r.Get("/health", s.handleHealth)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)

	r.Route("/users", func(r chi.Router) {
		r.Use(s.authorize)
		r.Get("/", s.handleListUsers)
		r.Post("/", s.handleCreateUser)
		r.Get("/{id}", s.handleGetUser)
		r.Put("/{id}", s.handleUpdateUser)
		r.Delete("/{id}", s.handleDeleteUser)
	})
	return r
}

// AddAccount registers credentials the fake will accept on /auth/login.
func (s *Server) AddAccount(name, email, password string) models.AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAccountLocked(name, email, password)
}

func (s *Server) addAccountLocked(name, email, password string) models.AuthUser {
	u := models.AuthUser{ID: uuid.NewString(), Name: name, Email: email, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	s.accounts[email] = account{user: u, password: password}
	return u
}

// SeedUsers appends directory entries in the given order.
func (s *Server) SeedUsers(users ...models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, users...)
}

func (s *Server) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...)
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// FailNext makes the next request matching method and path answer with
// status and body instead of being handled.
func (s *Server) FailNext(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// RevokeTokens forgets every issued token, as if they all expired.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

// SetRequireAuth toggles whether the /users routes demand a known bearer
// token. It is on by default.
func (s *Server) SetRequireAuth(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requireAuth = on
}

func (s *Server) SetHealth(h models.HealthStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = h
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz, has := r.Header["Authorization"]
		rec := Request{Method: r.Method, Path: r.URL.Path, HasAuth: has, RequestID: r.Header.Get("X-Request-ID")}
		if has && len(authz) > 0 {
			rec.Authorization = authz[0]
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		s.mu.Lock()
		f, ok := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()

		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	})
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		required := s.requireAuth
		_, known := s.tokens[token]
		s.mu.Unlock()

		if required && (!ok || !known) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	h := s.health
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "Invalid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[req.Email]
	if !ok || acc.password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, s.issueLocked(acc.user))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "Invalid JSON")
		return
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "validation_error", "Validation failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[req.Email]; exists {
		writeError(w, http.StatusConflict, "user_exists", "User with this email already exists")
		return
	}
	u := s.addAccountLocked(req.Name, req.Email, req.Password)
	writeJSON(w, http.StatusOK, s.issueLocked(u))
}

func (s *Server) issueLocked(u models.AuthUser) models.AuthResponse {
	token := uuid.NewString()
	s.tokens[token] = u.ID
	return models.AuthResponse{Token: token, User: u}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users := s.Users()
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(id); i >= 0 {
		writeJSON(w, http.StatusOK, s.users[i])
		return
	}
	writeError(w, http.StatusNotFound, "not_found", "User not found")
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Username == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "Validation failed")
		return
	}

	now := time.Now().UTC().Truncate(time.Second)
	u := models.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		Website:   req.Website,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if a := req.Address; a != nil {
		u.Address = &models.Address{ID: uuid.NewString(), UserID: u.ID, Street: a.Street, Suite: a.Suite, City: a.City, Zipcode: a.Zipcode, Geo: a.Geo}
	}
	if c := req.Company; c != nil {
		u.Company = &models.Company{ID: uuid.NewString(), UserID: u.ID, Name: c.Name, CatchPhrase: c.CatchPhrase, BS: c.BS}
	}

	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "Invalid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "not_found", "User not found")
		return
	}

	u := &s.users[i]
	setIf(&u.Name, req.Name)
	setIf(&u.Username, req.Username)
	setIf(&u.Email, req.Email)
	setIf(&u.Phone, req.Phone)
	setIf(&u.Website, req.Website)
	if a := req.Address; a != nil {
		u.Address = &models.Address{UserID: u.ID, Street: a.Street, Suite: a.Suite, City: a.City, Zipcode: a.Zipcode, Geo: a.Geo}
	}
	if c := req.Company; c != nil {
		u.Company = &models.Company{UserID: u.ID, Name: c.Name, CatchPhrase: c.CatchPhrase, BS: c.BS}
	}
	u.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	writeJSON(w, http.StatusOK, *u)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "not_found", "User not found")
		return
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) indexLocked(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: code, Message: msg})
}
