package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/waypoint/auth"
	"github.com/xy-planning-network/waypoint/config"
	"github.com/xy-planning-network/waypoint/dispatch"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/kvstore"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/metrics"
	"github.com/xy-planning-network/waypoint/postgres"
	"github.com/xy-planning-network/waypoint/resource"
	"github.com/xy-planning-network/waypoint/surreal"
)

// defaultOpts fills in, in order, whatever user options left unset.
func defaultOpts() []AppOption {
	return []AppOption{
		defaultLogger,
		defaultMetrics,
		defaultStores,
		defaultAuthority,
		defaultPipeline,
		defaultRouter,
		defaultServer,
	}
}

// NewLogger constructs the logger.Logger cfg describes,
// reporting to Sentry when SENTRY_DSN is set.
func NewLogger(cfg config.Config) logger.Logger {
	wl := logger.New(
		logger.WithEnv(cfg.Env.String()),
		logger.WithLevel(logger.NewLogLevel(cfg.LogLevel)),
	)
	if cfg.SentryDSN == "" {
		return wl
	}

	l := logger.NewSentryLogger(wl, cfg.SentryDSN)
	l.Debug("using SentryLogger", nil)

	return l
}

func defaultLogger(a *App) (OptFollowup, error) {
	if a.logger == nil {
		a.logger = NewLogger(a.cfg)
	}

	a.logger.Debug(fmt.Sprintf("using logger %T", a.logger), nil)
	return nil, nil
}

func defaultMetrics(a *App) (OptFollowup, error) {
	if a.metrics == nil {
		a.metrics = metrics.New(a.cfg.Dispatch.MetricNamespace)
	}

	return nil, nil
}

// defaultStores connects to every configured store an option did not provide.
func defaultStores(a *App) (OptFollowup, error) {
	if a.pool == nil && a.cfg.Postgres.Configured() {
		pool, err := postgres.Connect(a.cfg.Postgres.CxnConfig(), a.cfg.Env)
		if err != nil {
			return nil, err
		}

		a.pool = pool
		a.logger.Debug("connected to postgres", nil)
	}

	if a.kv == nil && a.cfg.Redis.Configured() {
		kv, err := kvstore.Open(a.cfg.Redis.Store())
		if err != nil {
			return nil, err
		}

		a.kv = kv
		a.logger.Debug("connected to redis", nil)
	}

	if a.docs == nil && a.cfg.Surreal.Configured() {
		docs, err := surreal.Connect(a.ctx, a.cfg.Surreal.Client())
		if err != nil {
			return nil, err
		}

		a.docs = docs
		a.logger.Debug("connected to surrealdb", nil)
	}

	return nil, nil
}

// defaultAuthority builds the authority cfg names when authentication is required.
func defaultAuthority(a *App) (OptFollowup, error) {
	if a.authority != nil || !a.cfg.Auth.Required {
		return nil, nil
	}

	var err error
	switch a.cfg.Auth.Authority {
	case config.AuthorityJWT:
		a.authority, err = auth.NewJWTAuthority(a.cfg.Auth.JWTKey)

	case config.AuthorityRedis:
		if a.kv == nil {
			return nil, fmt.Errorf("redis authority without a redis store")
		}

		a.authority = auth.NewRedisAuthority(a.kv.Client(), a.cfg.Auth.AccessTokenPrefix)

	case config.AuthorityGoogle:
		a.authority, err = auth.NewGoogleAuthority(a.cfg.Auth.GoogleClientID, a.cfg.Auth.GoogleSecret)

	default:
		err = fmt.Errorf("unknown authority %q", a.cfg.Auth.Authority)
	}

	if err != nil {
		return nil, err
	}

	a.logger.Debug(fmt.Sprintf("using authority %T", a.authority), nil)
	return nil, nil
}

// defaultPipeline builds the dispatch pipeline once stores and authority exist.
func defaultPipeline(a *App) (OptFollowup, error) {
	return func() error {
		prov := new(resource.Provisioner)
		if a.pool != nil {
			prov.Relational = a.pool
		}

		if a.kv != nil {
			prov.KV = a.kv
		}

		if a.docs != nil {
			prov.Docs = a.docs
		}

		a.responder = resp.NewResponder(resp.WithLogger(a.logger))

		resolver := dispatch.NewResolver(a.registry, a.cfg.Dispatch.Prefix)
		a.pipeline = dispatch.NewPipeline(
			resolver,
			dispatch.WithCoordinator(dispatch.NewCoordinator(a.cfg.Dispatch.Transactions)),
			dispatch.WithGuard(auth.NewGuard(a.authority)),
			dispatch.WithLogger(a.logger),
			dispatch.WithObserver(a.metrics),
			dispatch.WithProvisioner(prov),
			dispatch.WithResponder(a.responder),
			dispatch.WithTimeout(a.cfg.Dispatch.InvokeTimeout),
		)

		prefix := resolver.Prefix()
		if prefix == "" {
			prefix = "/"
		}

		a.logger.Info(fmt.Sprintf("dispatching handlers under prefix %s", prefix), nil)

		reg := a.registry
		if reg == nil {
			reg = dispatch.DefaultRegistry
		}

		a.logger.Info(fmt.Sprintf("registered handlers: %s", strings.Join(reg.Keys(), ", ")), nil)

		return nil
	}, nil
}

// defaultRouter mounts the pipeline and the metrics endpoint behind the middleware stack.
func defaultRouter(a *App) (OptFollowup, error) {
	return func() error {
		hc := a.cfg.HTTP
		r := router.New(a.cfg.Env)

		mws := []middleware.Adapter{
			middleware.RequestID(),
			middleware.InjectIPAddress(),
			middleware.LogRequest(a.logger),
		}

		if hc.ForceHTTPS {
			mws = append(mws, middleware.ForceHTTPS(a.cfg.Env))
		}

		mws = append(mws, middleware.Metrics(a.metrics), middleware.CORS(hc.Origins()...))
		if hc.Limit() > 0 {
			mws = append(mws, middleware.RateLimit(middleware.NewVisitors(hc.Limit(), hc.RateBurst)))
		}

		r.OnEveryRequest(mws...)
		r.Handle(router.Route{Path: "/metrics", Method: http.MethodGet, Handler: a.metrics.Handler()})
		r.Dispatch(a.pipeline.Prefix(), a.pipeline)
		r.HandleNotFound(a.notFound())

		a.router = r
		return nil
	}, nil
}

// notFound answers requests outside the dispatch prefix the same way
// the pipeline answers paths resolving to no handler.
func (a *App) notFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.responder.Fault(w, r, resp.NewFault(resp.MsgNotFound), nil)
	})
}

func defaultServer(a *App) (OptFollowup, error) {
	return func() error {
		if a.srv == nil {
			a.srv = &http.Server{
				Addr:         a.cfg.Addr(),
				IdleTimeout:  a.cfg.HTTP.IdleTimeout,
				ReadTimeout:  a.cfg.HTTP.ReadTimeout,
				WriteTimeout: a.cfg.HTTP.WriteTimeout,
			}
		}

		a.srv.Handler = a.router
		a.logger.Debug(fmt.Sprintf("using server at %s", a.srv.Addr), nil)

		return nil
	}, nil
}
