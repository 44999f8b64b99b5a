package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/token"
	"github.com/redis/go-redis/v9"
)

const ownerTokenLength = 24

// only the owner may delete the key
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every server process that talks to the same Redis
// Keys expire after ttl so a crashed holder can't wedge a session forever
type Redis struct {
	client     redis.UniversalClient
	prefix     string
	ttl        time.Duration
	retryDelay time.Duration

	mu     sync.Mutex
	owners map[string]string
}

// NewRedis returns a Redis backed Locker
func NewRedis(client redis.UniversalClient, ttl, retryDelay time.Duration) *Redis {
	return &Redis{
		client:     client,
		prefix:     "cga:lock:",
		ttl:        ttl,
		retryDelay: retryDelay,
		owners:     make(map[string]string),
	}
}

// Connect opens a client and checks that the server answers
func Connect(addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return client, nil
}

// TryLock sets the key if it does not exist
func (r *Redis) TryLock(ctx context.Context, key string) (bool, error) {
	owner, err := token.Generate(ownerTokenLength)
	if err != nil {
		return false, fmt.Errorf("could not generate lock owner: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.prefix+key, owner, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("could not acquire lock %s: %w", key, err)
	}

	if !ok {
		return false, nil
	}

	r.mu.Lock()
	r.owners[key] = owner
	r.mu.Unlock()
	return true, nil
}

// Lock retries TryLock after a fixed delay until it succeeds
func (r *Redis) Lock(ctx context.Context, key string) error {
	for {
		ok, err := r.TryLock(ctx, key)
		if err != nil {
			return err
		}

		if ok {
			return nil
		}

		timer := time.NewTimer(r.retryDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// Unlock deletes the key if this process still owns it
func (r *Redis) Unlock(ctx context.Context, key string) error {
	r.mu.Lock()
	owner, ok := r.owners[key]
	delete(r.owners, key)
	r.mu.Unlock()

	if !ok {
		return ErrNotHeld
	}

	n, err := unlockScript.Run(ctx, r.client, []string{r.prefix + key}, owner).Int()
	if err != nil {
		return fmt.Errorf("could not release lock %s: %w", key, err)
	}

	if n == 0 {
		// expired and possibly taken by someone else
		return ErrNotHeld
	}

	return nil
}
