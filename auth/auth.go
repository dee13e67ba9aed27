package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// TokenParam is the query parameter carrying the caller's access token.
const TokenParam = "access_token"

// An Identity is who is calling, as vouched for by an Authority.
type Identity interface {
	GetID() string
}

// A Client is the Identity Authorities in this package produce.
type Client struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data,omitempty"`
}

// GetID returns the ID of the Client.
func (c *Client) GetID() string { return c.ID }

//go:generate mockgen -destination=../internal/mock/authority.go -package=mock github.com/xy-planning-network/waypoint/auth Authority

// An Authority validates access tokens.
//
// Fetch returns a *Rejection when the token is not acceptable.
// Any other error means the Authority could not decide.
type Authority interface {
	Fetch(ctx context.Context, token string) (Identity, error)
}

// AuthorityFunc adapts an ordinary function to an Authority.
type AuthorityFunc func(ctx context.Context, token string) (Identity, error)

// Fetch calls fn.
func (fn AuthorityFunc) Fetch(ctx context.Context, token string) (Identity, error) {
	return fn(ctx, token)
}

// A Guard checks the access token of requests against an Authority.
//
// A nil *Guard or one without an Authority is disabled:
// Authenticate returns no Identity and no error.
type Guard struct {
	authority Authority
}

// NewGuard constructs a *Guard backed by a.
func NewGuard(a Authority) *Guard {
	return &Guard{authority: a}
}

// Enabled asserts whether g requires an access token.
func (g *Guard) Enabled() bool { return g != nil && g.authority != nil }

// Authenticate pulls TokenParam from v and asks the Authority for the Identity it represents.
//
// If TokenParam is missing, Authenticate returns ErrMissingToken without calling the Authority.
// If the Authority rejects the token, the *Rejection is returned as is.
// Other failures are wrapped with ErrUnexpected.
func (g *Guard) Authenticate(ctx context.Context, v url.Values) (Identity, error) {
	if !g.Enabled() {
		return nil, nil
	}

	token := v.Get(TokenParam)
	if token == "" {
		return nil, ErrMissingToken
	}

	id, err := g.authority.Fetch(ctx, token)
	if err != nil {
		var rej *Rejection
		if errors.As(err, &rej) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	if id == nil || id.GetID() == "" {
		return nil, fmt.Errorf("%w: authority %T returned no identity", ErrUnexpected, g.authority)
	}

	return id, nil
}
