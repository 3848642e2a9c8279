package auth

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/client/api"
	"github.com/dmitrijs2005/userdir/internal/client/models"
)

var _ api.SessionSource = (*State)(nil)

// State is the current session. The zero value is not usable; use NewState.
type State struct {
	mu      sync.RWMutex
	session models.Session

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(models.Session)
}

func NewState() *State {
	return &State{subs: make(map[int]func(models.Session))}
}

func (s *State) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// User returns the signed-in identity, or nil when anonymous.
func (s *State) User() *models.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.session.Valid() {
		return nil
	}
	u := s.session.User
	return &u
}

func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Valid()
}

// Subscribe registers fn to receive the session after every transition.
// fn runs on the goroutine that caused the transition and must not call
// back into the Controller.
func (s *State) Subscribe(fn func(models.Session)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *State) set(sess models.Session) {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	s.subMu.Unlock()

	// notify in registration order, outside the locks
	slices.Sort(ids)
	for _, id := range ids {
		s.subMu.Lock()
		fn, ok := s.subs[id]
		s.subMu.Unlock()
		if ok {
			fn(sess)
		}
	}
}
