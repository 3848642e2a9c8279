package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
}

type UsersAPI interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type HealthAPI interface {
	Health(ctx context.Context) (models.HealthStatus, error)
}

var (
	_ AuthAPI   = (*Client)(nil)
	_ UsersAPI  = (*Client)(nil)
	_ HealthAPI = (*Client)(nil)
)

// Client maps each directory operation onto exactly one HTTP call.
type Client struct {
	t *Transport
}

func NewClient(t *Transport) *Client {
	return &Client{t: t}
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.t.Do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return models.AuthResponse{}, err
	}
	return resp, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.t.Do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return models.AuthResponse{}, err
	}
	return resp, nil
}

func (c *Client) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.t.Do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	if id == "" {
		return models.User{}, ErrEmptyID
	}
	var u models.User
	if err := c.t.Do(ctx, http.MethodGet, userPath(id), nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	var u models.User
	if err := c.t.Do(ctx, http.MethodPost, "/users", req, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
	if id == "" {
		return models.User{}, ErrEmptyID
	}
	var u models.User
	if err := c.t.Do(ctx, http.MethodPut, userPath(id), req, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	return c.t.Do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

// Health returns whatever status payload the service reports; a 2xx with
// a non-"ok" status is not an error here.
func (c *Client) Health(ctx context.Context) (models.HealthStatus, error) {
	var h models.HealthStatus
	if err := c.t.Do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return models.HealthStatus{}, err
	}
	return h, nil
}

func userPath(id string) string {
	return "/users/" + url.PathEscape(id)
}
