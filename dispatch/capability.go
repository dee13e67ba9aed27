package dispatch

import (
	"context"
	"errors"

	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/kvstore"
	"github.com/xy-planning-network/waypoint/postgres"
	"github.com/xy-planning-network/waypoint/surreal"
)

// A BeforeEacher runs before every method invoked on it.
//
// Returning a *resp.Fault answers the request with that Fault
// without invoking the method.
// Any other error answers with a general fault.
type BeforeEacher interface {
	BeforeEach(ctx context.Context, method string) error
}

// A TransactionRequirer names the methods that run inside a database transaction.
type TransactionRequirer interface {
	RequireTransaction() map[string]bool
}

var parser = req.NewParser()

// Base gives handlers embedding it access to their Scope
// and no-op implementations of BeforeEacher and TransactionRequirer.
type Base struct {
	Scope
}

// NewBase constructs a Base from s.
func NewBase(s Scope) Base { return Base{Scope: s} }

// BeforeEach does nothing.
func (Base) BeforeEach(context.Context, string) error { return nil }

// RequireTransaction requires no transactions.
func (Base) RequireTransaction() map[string]bool { return nil }

// DB returns a *postgres.DB for the request's relational connection, or nil.
func (b Base) DB() *postgres.DB { return b.Bundle.DB() }

// KV returns the request's key-value connection, or nil.
func (b Base) KV() *kvstore.Conn { return b.Bundle.KV() }

// Docs returns the request's document session, or nil.
func (b Base) Docs() *surreal.Session { return b.Bundle.Docs() }

// UserID returns the ID of the caller, or "" when no access token was required.
func (b Base) UserID() string {
	if b.Identity == nil {
		return ""
	}

	return b.Identity.GetID()
}

// ParseBody decodes the JSON body of the request into structPtr and validates it.
// A payload failing validation returns a *resp.Fault listing each failure in its Result.
func (b Base) ParseBody(structPtr any) error {
	return validationFault(parser.ParseBody(b.Request.Body, structPtr))
}

// ParseQuery decodes the query params of the request into structPtr and validates it.
// A payload failing validation returns a *resp.Fault listing each failure in its Result.
func (b Base) ParseQuery(structPtr any) error {
	return validationFault(parser.ParseQueryParams(b.Request.URL.Query(), structPtr))
}

func validationFault(err error) error {
	var ve req.ValidationErrors
	if errors.As(err, &ve) {
		return &resp.Fault{Code: resp.CodeFault, Msg: resp.MsgNotValid, Result: ve}
	}

	return err
}
