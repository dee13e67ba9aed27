package dispatch

import (
	"context"
	"fmt"

	"github.com/xy-planning-network/waypoint/auth"
	"github.com/xy-planning-network/waypoint/postgres"
	"github.com/xy-planning-network/waypoint/resource"
)

// A Coordinator opens database transactions for the handler methods requiring them.
// A nil *Coordinator never opens one.
type Coordinator struct {
	enabled bool
}

// NewCoordinator constructs a *Coordinator.
// When enabled is false, no transactions are opened.
func NewCoordinator(enabled bool) *Coordinator {
	return &Coordinator{enabled: enabled}
}

// Requires asserts whether invoking method on h calls for a transaction.
func (c *Coordinator) Requires(h any, method string) bool {
	if c == nil || !c.enabled {
		return false
	}

	tr, ok := h.(TransactionRequirer)
	if !ok {
		return false
	}

	return tr.RequireTransaction()[method]
}

// MaybeBegin opens a transaction on the relational connection of b
// when method on h requires one, there is a connection and the caller is identified.
// Otherwise it returns a nil *postgres.Tx.
func (c *Coordinator) MaybeBegin(ctx context.Context, h any, method string, id auth.Identity, b *resource.Bundle) (*postgres.Tx, error) {
	if !c.Requires(h, method) {
		return nil, nil
	}

	conn := b.Conn()
	if conn == nil || id == nil {
		return nil, nil
	}

	tx, err := conn.Begin(ctx, id.GetID())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTxBegin, err)
	}

	return tx, nil
}
