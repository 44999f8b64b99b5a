package lock

import (
	"context"
	"errors"
)

// ErrNotHeld is returned when unlocking a key the caller does not hold
var ErrNotHeld = errors.New("lock not held")

// Locker is an advisory lock keyed by session id
// At most one holder may own a key at a time. Holders must Unlock on every path.
type Locker interface {
	// TryLock acquires the key if it's free and reports whether it did
	TryLock(ctx context.Context, key string) (bool, error)

	// Lock blocks until the key is acquired or the context is done
	Lock(ctx context.Context, key string) error

	// Unlock releases the key
	Unlock(ctx context.Context, key string) error
}
