package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xy-planning-network/waypoint"
	"gorm.io/gorm"
)

// A Conn is one connection pinned for the exclusive use of one request.
//
// A Conn is released at most once; later calls to Release do nothing.
// While a *Tx is open on the Conn, DB routes queries through it.
type Conn struct {
	mu       sync.Mutex
	db       *gorm.DB
	tx       *Tx
	release  func() error
	released bool
}

// NewConn constructs a *Conn querying through db.
// release is called by the first call to Release.
func NewConn(db *gorm.DB, release func() error) *Conn {
	return &Conn{db: db, release: release}
}

// DB returns a *DB for building queries,
// bound to the open transaction if there is one.
func (c *Conn) DB() *DB {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tx != nil {
		return &DB{db: c.tx.db}
	}

	return &DB{db: c.db}
}

// Begin opens a transaction on c on behalf of userID.
//
// Only one transaction may be open on a Conn at a time.
func (c *Conn) Begin(ctx context.Context, userID string) (*Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return nil, fmt.Errorf("%w: connection released", waypoint.ErrNotValid)
	}

	if c.tx != nil {
		return nil, fmt.Errorf("%w: transaction already open", waypoint.ErrNotValid)
	}

	gdb := c.db.WithContext(ctx).Begin()
	if gdb.Error != nil {
		return nil, fmt.Errorf("%w: failed beginning tx: %s", waypoint.ErrUnexpected, gdb.Error)
	}

	c.tx = &Tx{Began: time.Now(), UserID: userID, conn: c, db: gdb}
	return c.tx, nil
}

// Release returns c to the pool it was acquired from.
// An open transaction is rolled back first.
func (c *Conn) Release() error {
	c.mu.Lock()
	tx := c.tx
	c.mu.Unlock()

	var err error
	if tx != nil {
		err = tx.Rollback()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return err
	}

	c.released = true
	if c.release != nil {
		err = errors.Join(err, c.release())
	}

	return err
}

// Released asserts whether Release has been called.
func (c *Conn) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.released
}

// A Tx is a transaction open on a *Conn.
type Tx struct {
	Began  time.Time
	UserID string

	mu   sync.Mutex
	conn *Conn
	db   *gorm.DB
	done bool
}

// DB returns a *DB for building queries inside the transaction.
func (tx *Tx) DB() *DB { return &DB{db: tx.db} }

// Commit applies the state changes of the transaction
// and makes them visible to other database connections.
func (tx *Tx) Commit() error {
	if !tx.finish() {
		return ErrTxDone
	}

	if err := tx.db.Commit().Error; err != nil {
		return fmt.Errorf("%w: failed committing tx: %s", waypoint.ErrUnexpected, err)
	}

	return nil
}

// Rollback reverts the transaction.
// Rolling back a transaction already committed or rolled back does nothing.
func (tx *Tx) Rollback() error {
	if !tx.finish() {
		return nil
	}

	err := tx.db.Rollback().Error
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("%w: failed rolling back tx: %s", waypoint.ErrUnexpected, err)
	}

	return nil
}

// finish marks tx done and detaches it from its *Conn,
// reporting whether this call did so.
func (tx *Tx) finish() bool {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	if tx.done {
		return false
	}

	tx.done = true
	tx.conn.mu.Lock()
	if tx.conn.tx == tx {
		tx.conn.tx = nil
	}
	tx.conn.mu.Unlock()

	return true
}
