package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

const (
	sessionKey   = "session"
	lastEmailKey = "last_email"
)

var (
	ErrCorruptSession = errors.New("corrupt stored session")
	ErrEmptySession   = errors.New("session has no token")
)

// Store is the durable single-slot session holder.
//
// Get reports ok=false when no session is stored.
type Store interface {
	Get(ctx context.Context) (s models.Session, ok bool, err error)
	Set(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}
