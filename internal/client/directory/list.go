// Package directory keeps the client-side view of the user directory: the
// loaded entries, the entry opened for detail, and the failure flag shown
// to the user.
package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

const (
	LoadFailedMessage   = "Failed to load users"
	DeleteFailedMessage = "Failed to delete user"
)

var (
	ErrAnonymous  = errors.New("not signed in")
	ErrSuperseded = errors.New("load superseded by a newer one")
)

// UsersAPI is the part of the service the list talks to.
type UsersAPI interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Authenticator tells whether a session is present.
type Authenticator interface {
	IsAuthenticated() bool
}

type List struct {
	api  UsersAPI
	auth Authenticator
	log  logging.Logger

	mu       sync.Mutex
	gen      uint64
	users    []models.User
	selected *models.User
	loading  bool
	errMsg   string
}

func New(usersAPI UsersAPI, auth Authenticator, log logging.Logger) *List {
	if log == nil {
		log = logging.Nop()
	}
	return &List{api: usersAPI, auth: auth, log: log}
}

// Load replaces the entries with a fresh listing. It refuses without a
// session. When another Load or a Reset starts before this one returns,
// the response is dropped and ErrSuperseded is returned.
func (l *List) Load(ctx context.Context) error {
	if !l.auth.IsAuthenticated() {
		return ErrAnonymous
	}

	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.users = nil
	l.errMsg = ""
	l.loading = true
	l.mu.Unlock()

	users, err := l.api.GetUsers(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		l.log.Debug(ctx, "dropping stale user listing", "generation", gen)
		return ErrSuperseded
	}
	l.loading = false
	if err != nil {
		l.errMsg = LoadFailedMessage
		l.log.Warn(ctx, "load users failed", "error", err)
		return err
	}

	l.users = users
	if l.selected != nil && indexOf(l.users, l.selected.ID) < 0 {
		l.selected = nil
	}
	return nil
}

// Retry is Load under the name the failure notice offers.
func (l *List) Retry(ctx context.Context) error {
	return l.Load(ctx)
}

// Delete removes id on the service and then locally. The detail view is
// closed on success. On failure the entry stays and the flag is set.
func (l *List) Delete(ctx context.Context, id string) error {
	if err := l.api.DeleteUser(ctx, id); err != nil {
		l.mu.Lock()
		l.errMsg = DeleteFailedMessage
		l.mu.Unlock()
		l.log.Warn(ctx, "delete user failed", "user_id", id, "error", err)
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if i := indexOf(l.users, id); i >= 0 {
		l.users = append(l.users[:i:i], l.users[i+1:]...)
	}
	l.selected = nil
	return nil
}

// Select opens the detail view for id. It reports false when id is not
// among the loaded entries.
func (l *List) Select(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := indexOf(l.users, id)
	if i < 0 {
		return false
	}
	u := l.users[i]
	l.selected = &u
	return true
}

func (l *List) CloseDetail() {
	l.mu.Lock()
	l.selected = nil
	l.mu.Unlock()
}

func (l *List) Selected() (models.User, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected == nil {
		return models.User{}, false
	}
	return *l.selected, true
}

// Users returns a copy of the entries in service order.
func (l *List) Users() []models.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.User(nil), l.users...)
}

func (l *List) Find(id string) (models.User, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := indexOf(l.users, id); i >= 0 {
		return l.users[i], true
	}
	return models.User{}, false
}

func (l *List) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the user-facing failure flag, or "" when there is none.
func (l *List) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Reset forgets everything and invalidates any load in flight.
func (l *List) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.users = nil
	l.selected = nil
	l.loading = false
	l.errMsg = ""
}

func indexOf(users []models.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
