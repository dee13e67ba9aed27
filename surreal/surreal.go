package surreal

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Config holds what is needed to reach SurrealDB.
type Config struct {
	URL       string
	Namespace string
	Database  string
	User      string
	Password  string
}

// A Client is the process wide websocket connection to SurrealDB.
// It is safe for concurrent use.
type Client struct {
	db *surrealdb.DB
}

// Connect opens a *Client, signs in and selects the namespace and database of cfg.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	url := cfg.URL
	if !strings.Contains(url, "://") {
		url = "ws://" + url
	}

	db, err := surrealdb.FromEndpointURLString(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConnection, err)
	}

	if cfg.User != "" {
		if _, err := db.SignIn(ctx, &surrealdb.Auth{Username: cfg.User, Password: cfg.Password}); err != nil {
			_ = db.Close(ctx)
			return nil, fmt.Errorf("%w: signin failed: %s", ErrConnection, err)
		}
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("%w: use failed: %s", ErrConnection, err)
	}

	return &Client{db: db}, nil
}

// Acquire opens a *Session for one request.
// The caller must call Release on the *Session.
func (c *Client) Acquire(ctx context.Context) (*Session, error) {
	if c == nil || c.db == nil {
		return nil, ErrConnection
	}

	return NewSession(c.query, nil), nil
}

// Ping checks the connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %s", ErrConnection, err)
	}

	return nil
}

// Close closes the connection.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.db == nil {
		return nil
	}

	return c.db.Close(ctx)
}

func (c *Client) query(ctx context.Context, sql string, vars map[string]any) ([]Result, error) {
	results, err := surrealdb.Query[any](ctx, c.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQuery, err)
	}

	if results == nil {
		return nil, nil
	}

	out := make([]Result, 0, len(*results))
	for _, r := range *results {
		res := Result{Status: r.Status, Result: r.Result}
		if r.Error != nil {
			res.Error = r.Error.Message
		}

		out = append(out, res)
	}

	return out, nil
}
