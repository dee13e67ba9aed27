package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/waypoint/auth"
	"github.com/xy-planning-network/waypoint/dispatch"
	"github.com/xy-planning-network/waypoint/kvstore"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/postgres"
	"github.com/xy-planning-network/waypoint/surreal"
)

// An AppOption configures an *App either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some AppOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *App is updated with the enclosed value.
//
// The options building the pipeline are an example of the second:
// they need the stores and the authority to exist first.
type AppOption func(a *App) (OptFollowup, error)
type OptFollowup func() error

// WithAuthority validates access tokens with auth instead of the authority cfg names.
// Setting one gates every request whether or not cfg requires authentication.
func WithAuthority(authority auth.Authority) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.authority = authority
		return nil, nil
	}
}

// WithContext sets the context.Context whose cancellation stops (*App).Run.
func WithContext(ctx context.Context) AppOption {
	return func(a *App) (OptFollowup, error) {
		if ctx == nil {
			return nil, fmt.Errorf("nil context")
		}

		a.ctx = ctx
		return nil, nil
	}
}

// WithDocs exposes an already connected *surreal.Client to handlers.
func WithDocs(c *surreal.Client) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.docs = c
		return nil, nil
	}
}

// WithKV exposes an already opened *kvstore.Store to handlers.
func WithKV(s *kvstore.Store) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.kv = s
		return nil, nil
	}
}

// WithLogger sets the logger.Logger every component logs with.
func WithLogger(l logger.Logger) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.logger = l
		return nil, nil
	}
}

// WithPool exposes an already connected *postgres.Pool to handlers.
func WithPool(p *postgres.Pool) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.pool = p
		return nil, nil
	}
}

// WithRegistry resolves handlers from reg instead of dispatch.DefaultRegistry.
func WithRegistry(reg *dispatch.Registry) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.registry = reg
		return nil, nil
	}
}

// WithServer serves requests with s.
// The handler of s is replaced by the App's router.
func WithServer(s *http.Server) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.srv = s
		return nil, nil
	}
}
