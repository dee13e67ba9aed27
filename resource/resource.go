package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/xy-planning-network/waypoint/kvstore"
	"github.com/xy-planning-network/waypoint/postgres"
	"github.com/xy-planning-network/waypoint/surreal"
)

// An Opener opens a store handle for one request.
type Opener[T any] interface {
	Acquire(ctx context.Context) (T, error)
}

// OpenerFunc adapts an ordinary function to an Opener.
type OpenerFunc[T any] func(ctx context.Context) (T, error)

// Acquire calls fn.
func (fn OpenerFunc[T]) Acquire(ctx context.Context) (T, error) { return fn(ctx) }

// A Provisioner opens the stores a request may use.
// A nil Opener means the store is not configured and is skipped.
type Provisioner struct {
	Relational Opener[*postgres.Conn]
	KV         Opener[*kvstore.Conn]
	Docs       Opener[*surreal.Session]
}

// Provision opens every configured store, in the order relational, key-value then document,
// and returns them in a *Bundle.
//
// If any store fails to open, Provision releases the handles already opened
// and returns the error.
func (p *Provisioner) Provision(ctx context.Context) (*Bundle, error) {
	b := new(Bundle)
	if p == nil {
		return b, nil
	}

	if p.Relational != nil {
		conn, err := p.Relational.Acquire(ctx)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("%w: relational: %w", ErrProvision, err), b.Release())
		}
		b.conn = conn
	}

	if p.KV != nil {
		kv, err := p.KV.Acquire(ctx)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("%w: key-value: %w", ErrProvision, err), b.Release())
		}
		b.kv = kv
	}

	if p.Docs != nil {
		docs, err := p.Docs.Acquire(ctx)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("%w: document: %w", ErrProvision, err), b.Release())
		}
		b.docs = docs
	}

	return b, nil
}

// A Bundle holds the store handles of one request.
// Any of them may be nil.
type Bundle struct {
	conn *postgres.Conn
	kv   *kvstore.Conn
	docs *surreal.Session

	mu       sync.Mutex
	released bool
}

// NewBundle constructs a *Bundle from already opened handles.
func NewBundle(conn *postgres.Conn, kv *kvstore.Conn, docs *surreal.Session) *Bundle {
	return &Bundle{conn: conn, kv: kv, docs: docs}
}

// Conn returns the relational connection, or nil.
func (b *Bundle) Conn() *postgres.Conn {
	if b == nil {
		return nil
	}

	return b.conn
}

// DB returns a *postgres.DB for querying the relational connection, or nil.
// Queries run inside the transaction open on the connection, if any.
func (b *Bundle) DB() *postgres.DB {
	if b.Conn() == nil {
		return nil
	}

	return b.conn.DB()
}

// KV returns the key-value connection, or nil.
func (b *Bundle) KV() *kvstore.Conn {
	if b == nil {
		return nil
	}

	return b.kv
}

// Docs returns the document session, or nil.
func (b *Bundle) Docs() *surreal.Session {
	if b == nil {
		return nil
	}

	return b.docs
}

// Release releases every handle in b, joining any errors.
// Calls after the first do nothing.
func (b *Bundle) Release() error {
	if b == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return nil
	}
	b.released = true

	var err error
	if b.docs != nil {
		err = errors.Join(err, b.docs.Release())
	}

	if b.kv != nil {
		err = errors.Join(err, b.kv.Release())
	}

	if b.conn != nil {
		err = errors.Join(err, b.conn.Release())
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrRelease, err)
	}

	return nil
}
