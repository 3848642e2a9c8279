package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/client/api"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// Controller moves State between anonymous and authenticated.
type Controller struct {
	// mu serializes transitions so store and state agree.
	mu sync.Mutex

	state *State
	store session.Store
	api   api.AuthAPI
	log   logging.Logger
}

// NewController adopts whatever session the store holds, without asking the
// service whether it is still valid. A store that cannot be read leaves the
// controller anonymous.
func NewController(ctx context.Context, state *State, store session.Store, authAPI api.AuthAPI, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	c := &Controller{state: state, store: store, api: authAPI, log: log}

	sess, ok, err := store.Get(ctx)
	switch {
	case err != nil:
		log.Warn(ctx, "stored session unreadable, starting anonymous", "error", err)
	case ok:
		state.set(sess)
		log.Debug(ctx, "session restored", "user_id", sess.User.ID)
	}
	return c
}

func (c *Controller) State() *State {
	return c.state
}

// Login authenticates with the service. On failure nothing changes.
func (c *Controller) Login(ctx context.Context, req models.LoginRequest) error {
	resp, err := c.api.Login(ctx, req)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adopt(ctx, resp)
}

// Register creates an account and signs in as it. On failure nothing changes.
func (c *Controller) Register(ctx context.Context, req models.RegisterRequest) error {
	resp, err := c.api.Register(ctx, req)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adopt(ctx, resp)
}

func (c *Controller) adopt(ctx context.Context, resp models.AuthResponse) error {
	sess := models.SessionFromAuth(resp)
	if err := c.store.Set(ctx, sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	c.state.set(sess)
	c.log.Info(ctx, "signed in", "user_id", sess.User.ID)
	return nil
}

// Logout drops the session locally. The service is not contacted.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.set(models.Session{})
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	c.log.Info(ctx, "signed out")
	return nil
}
