package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Config holds what is needed to reach Redis.
// URL, when set, takes precedence over Addr, Password and DB.
type Config struct {
	URL      string
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// A Store is the process wide pool of connections to Redis.
type Store struct {
	rdb *redis.Client
}

// Open constructs a *Store according to cfg.
// No connection is made until one is needed.
func Open(cfg Config) (*Store, error) {
	opts := &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	if cfg.URL != "" {
		var err error
		opts, err = redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConnection, err)
		}
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}

	return NewStore(redis.NewClient(opts)), nil
}

// NewStore constructs a *Store from a *redis.Client.
func NewStore(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

// Client exposes the *redis.Client backing s.
func (s *Store) Client() *redis.Client { return s.rdb }

// Acquire pins one connection out of the pool for the exclusive use of the caller.
// The caller must call Release on the *Conn.
func (s *Store) Acquire(ctx context.Context) (*Conn, error) {
	cn := s.rdb.Conn(ctx)
	if err := cn.Ping(ctx).Err(); err != nil {
		cn.Close()
		return nil, fmt.Errorf("%w: %s", ErrConnection, err)
	}

	return NewConn(cn, cn.Close), nil
}

// Close closes every connection in the pool.
func (s *Store) Close() error { return s.rdb.Close() }

// Commands are the Redis commands a Conn issues.
// Both *redis.Conn and *redis.Client satisfy it.
type Commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
