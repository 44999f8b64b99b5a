package lock

import (
	"context"
	"sync"
)

// KeyedMutex is an in-process Locker
// Waiters park on the holder's release channel instead of polling
type KeyedMutex struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

// NewKeyedMutex returns an empty keyed mutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		held: make(map[string]chan struct{}),
	}
}

// TryLock acquires the key if nobody holds it
func (k *KeyedMutex) TryLock(_ context.Context, key string) (bool, error) {
	_, acquired := k.tryLock(key)
	return acquired, nil
}

func (k *KeyedMutex) tryLock(key string) (<-chan struct{}, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if released, ok := k.held[key]; ok {
		return released, false
	}

	k.held[key] = make(chan struct{})
	return nil, true
}

// Lock waits for the key to be released and then acquires it
func (k *KeyedMutex) Lock(ctx context.Context, key string) error {
	for {
		released, acquired := k.tryLock(key)
		if acquired {
			return nil
		}

		select {
		case <-released:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Unlock releases the key and wakes every waiter
func (k *KeyedMutex) Unlock(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	released, ok := k.held[key]
	if !ok {
		return ErrNotHeld
	}

	delete(k.held, key)
	close(released)
	return nil
}

// Held returns the number of keys currently held
func (k *KeyedMutex) Held() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.held)
}
