package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultTokenPrefix namespaces access tokens in Redis.
const DefaultTokenPrefix = "waypoint:access_token:"

// A RedisAuthority looks up access tokens an issuing service stored in Redis.
// Each token key holds a JSON encoded Client.
type RedisAuthority struct {
	rdb    redis.Cmdable
	prefix string
}

// NewRedisAuthority constructs a *RedisAuthority.
// If prefix is "", DefaultTokenPrefix is used.
func NewRedisAuthority(rdb redis.Cmdable, prefix string) *RedisAuthority {
	if prefix == "" {
		prefix = DefaultTokenPrefix
	}

	return &RedisAuthority{rdb: rdb, prefix: prefix}
}

// Fetch retrieves the Client stored for token.
func (a *RedisAuthority) Fetch(ctx context.Context, token string) (Identity, error) {
	val, err := a.rdb.Get(ctx, a.prefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, Reject("access token is invalid or expired")
	}

	if err != nil {
		return nil, err
	}

	c := new(Client)
	if err := json.Unmarshal([]byte(val), c); err != nil {
		return nil, fmt.Errorf("%w: cannot decode client: %s", ErrUnexpected, err)
	}

	if c.ID == "" {
		return nil, Reject("access token has no client")
	}

	return c, nil
}

// Store saves c under token for ttl.
func (a *RedisAuthority) Store(ctx context.Context, token string, c *Client, ttl time.Duration) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}

	return a.rdb.Set(ctx, a.prefix+token, b, ttl).Err()
}
