package store

import (
	"context"
	"errors"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
)

// ErrNotFound is returned when no session matches the id or join code
var ErrNotFound = errors.New("session not found")

// Store persists sessions
// Save is last-write-wins, callers serialize writers with the session lock
type Store interface {
	// Create inserts a new session
	Create(ctx context.Context, s *session.Session) error

	// Load returns the session with the id
	Load(ctx context.Context, id string) (*session.Session, error)

	// LoadByCode returns the session with the join code
	LoadByCode(ctx context.Context, code string) (*session.Session, error)

	// Save writes the state and players of an existing session
	Save(ctx context.Context, s *session.Session) error

	// CodeExists reports whether a join code is in use
	CodeExists(ctx context.Context, code string) (bool, error)
}
