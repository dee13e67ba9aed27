package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// A Conn reads and writes JSON documents through one connection
// pinned for the exclusive use of one request.
type Conn struct {
	cmd Commands

	mu       sync.Mutex
	release  func() error
	released bool
}

// NewConn constructs a *Conn issuing commands through cmd.
// release is called by the first call to Release.
func NewConn(cmd Commands, release func() error) *Conn {
	return &Conn{cmd: cmd, release: release}
}

// GetJSON decodes the document stored at key into dest.
//
// If nothing is stored at key, GetJSON returns ErrNotFound.
func (c *Conn) GetJSON(ctx context.Context, key string, dest any) error {
	if c.Released() {
		return ErrReleased
	}

	b, err := c.cmd.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	if err != nil {
		return err
	}

	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("cannot decode %s into %T: %w", key, dest, err)
	}

	return nil
}

// SetJSON encodes val and stores it at key.
// A ttl of 0 keeps the document until deleted.
func (c *Conn) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	if c.Released() {
		return ErrReleased
	}

	b, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("cannot encode %T: %w", val, err)
	}

	return c.cmd.Set(ctx, key, b, ttl).Err()
}

// Del removes the documents stored at keys, returning how many existed.
func (c *Conn) Del(ctx context.Context, keys ...string) (int64, error) {
	if c.Released() {
		return 0, ErrReleased
	}

	return c.cmd.Del(ctx, keys...).Result()
}

// Release hands the connection back to the pool.
// Calls after the first do nothing.
func (c *Conn) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return nil
	}

	c.released = true
	if c.release == nil {
		return nil
	}

	return c.release()
}

// Released asserts whether Release has been called.
func (c *Conn) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.released
}
