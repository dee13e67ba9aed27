package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/auth"
	"github.com/xy-planning-network/waypoint/config"
	"github.com/xy-planning-network/waypoint/dispatch"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/kvstore"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/metrics"
	"github.com/xy-planning-network/waypoint/postgres"
	"github.com/xy-planning-network/waypoint/surreal"
)

const shutdownTimeout = 5 * time.Second

// An App manages and exposes all components of a waypoint app to one another.
type App struct {
	cfg config.Config
	ctx context.Context

	authority auth.Authority
	docs      *surreal.Client
	kv        *kvstore.Store
	logger    logger.Logger
	metrics   *metrics.Metrics
	pipeline  *dispatch.Pipeline
	pool      *postgres.Pool
	registry  *dispatch.Registry
	responder *resp.Responder
	router    *router.Router
	srv       *http.Server
}

// New constructs an *App from cfg and the provided options.
//
// Options run first; whatever they leave unset is then built from cfg.
// Stores are connected to only when cfg configures them.
func New(cfg config.Config, opts ...AppOption) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, ctx: context.Background()}
	followups := make([]OptFollowup, 0)

	// NOTE: some options need what others build,
	// so they return an OptFollowup called once every option ran.
	for _, opt := range append(opts, defaultOpts()...) {
		fn, err := opt(a)
		if err != nil {
			a.closeStores()
			return nil, fmt.Errorf("%w: %s", waypoint.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			a.closeStores()
			return nil, fmt.Errorf("%w: %s", waypoint.ErrBadConfig, err)
		}
	}

	return a, nil
}

// Handler is the http.Handler serving every request the App answers.
func (a *App) Handler() http.Handler { return a.router }

func (a *App) Logger() logger.Logger        { return a.logger }
func (a *App) Metrics() *metrics.Metrics    { return a.metrics }
func (a *App) Pipeline() *dispatch.Pipeline { return a.pipeline }
func (a *App) Responder() *resp.Responder   { return a.responder }
func (a *App) Server() *http.Server         { return a.srv }

// Run begins the web server.
//
// These, and (*App).Shutdown, stop Run:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
// - cancelling the context passed with WithContext
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			a.logger.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	go func() {
		a.logger.Info(fmt.Sprintf("running web server at %s", a.srv.Addr), nil)
		if err := a.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("could not listen: %w", err)
			a.logger.Error(err.Error(), nil)
			cancel()
		}
	}()

	<-ctx.Done()
	return a.Shutdown()
}

// Shutdown shuts down the web server, then closes every store the App connected to.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("shutting down web server", nil)
	if err := a.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	if err := a.closeStores(); err != nil {
		a.logger.Error("could not close stores", &logger.LogContext{Error: err})
		return err
	}

	a.logger.Info("web server shutdown successfully", nil)
	return nil
}

// closeStores closes every store pool a holds.
func (a *App) closeStores() error {
	var errs []error
	if a.pool != nil {
		errs = append(errs, a.pool.Close())
	}

	if a.kv != nil {
		errs = append(errs, a.kv.Close())
	}

	if a.docs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		errs = append(errs, a.docs.Close(ctx))
	}

	return errors.Join(errs...)
}
