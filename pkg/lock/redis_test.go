package lock

import (
	"context"
	"testing"
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()

	client, err := Connect(util.Getenv("REDIS_ADDR", "localhost:6379"), 0)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}

	t.Cleanup(func() { _ = client.Close() })
	r := NewRedis(client, time.Second, 10*time.Millisecond)
	r.prefix = "cga:test:lock:"
	return r
}

func TestRedis_TryLockAndUnlock(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	r := newTestRedis(t)
	other := NewRedis(r.client, time.Second, 10*time.Millisecond)
	other.prefix = r.prefix

	key := t.Name()
	_ = r.client.Del(ctx, r.prefix+key)

	ok, err := r.TryLock(ctx, key)
	require.NoError(t, err)
	a.True(ok)

	ok, err = other.TryLock(ctx, key)
	a.NoError(err)
	a.False(ok)

	// a process can't release a lock it does not own
	a.Equal(ErrNotHeld, other.Unlock(ctx, key))

	a.NoError(r.Unlock(ctx, key))
	a.Equal(ErrNotHeld, r.Unlock(ctx, key))

	ok, err = other.TryLock(ctx, key)
	a.NoError(err)
	a.True(ok)
	a.NoError(other.Unlock(ctx, key))
}

func TestRedis_LockRetries(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	r := newTestRedis(t)
	other := NewRedis(r.client, time.Second, 10*time.Millisecond)
	other.prefix = r.prefix

	key := t.Name()
	_ = r.client.Del(ctx, r.prefix+key)

	require.NoError(t, r.Lock(ctx, key))
	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = r.Unlock(ctx, key)
	}()

	a.NoError(other.Lock(ctx, key))
	a.NoError(other.Unlock(ctx, key))

	require.NoError(t, r.Lock(ctx, key))
	defer func() { _ = r.Unlock(ctx, key) }()

	timeout, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	a.Error(other.Lock(timeout, key))
}
