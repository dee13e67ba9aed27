package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/kvstore"
	"github.com/xy-planning-network/waypoint/postgres"
	"github.com/xy-planning-network/waypoint/surreal"
	"golang.org/x/time/rate"
)

// Authorities validating access tokens.
const (
	AuthorityGoogle = "google"
	AuthorityJWT    = "jwt"
	AuthorityRedis  = "redis"
)

// A Config holds every setting a waypoint app reads from its environment.
// It is built once at startup and handed to the constructors needing it.
type Config struct {
	Env       waypoint.Environment `env:"ENVIRONMENT,default=DEVELOPMENT"`
	Host      string               `env:"HOST,default=localhost"`
	Port      string               `env:"PORT,default=3000"`
	LogLevel  string               `env:"LOG_LEVEL,default=INFO"`
	SentryDSN string               `env:"SENTRY_DSN"`

	Auth     Auth
	Dispatch Dispatch
	HTTP     HTTP
	Postgres Postgres
	Redis    Redis
	Surreal  Surreal
}

// Dispatch configures how request paths reach handlers.
type Dispatch struct {
	Prefix          string        `env:"ROUTER_PREFIX"`
	Transactions    bool          `env:"TRANSACTION_MODE,default=false"`
	InvokeTimeout   time.Duration `env:"INVOKE_TIMEOUT,default=30s"`
	MetricNamespace string        `env:"METRICS_NAMESPACE,default=waypoint"`
}

// Auth configures the access guard.
type Auth struct {
	Required          bool   `env:"AUTH_REQUIRED,default=false"`
	Authority         string `env:"AUTH_AUTHORITY,default=jwt"`
	JWTKey            string `env:"JWT_KEY"`
	GoogleClientID    string `env:"GOOGLE_CLIENT_ID"`
	GoogleSecret      string `env:"GOOGLE_CLIENT_SECRET"`
	AccessTokenPrefix string `env:"ACCESS_TOKEN_PREFIX,default=access_token:"`
}

// HTTP configures the web server and the middleware in front of the dispatcher.
type HTTP struct {
	CORSOrigin   string        `env:"CORS_ORIGIN"`
	ForceHTTPS   bool          `env:"FORCE_HTTPS,default=false"`
	RateLimit    float64       `env:"RATE_LIMIT,default=5"`
	RateBurst    int           `env:"RATE_BURST,default=20"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT,default=120s"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT,default=5s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT,default=35s"`
}

// Origins splits CORSOrigin on commas.
func (h HTTP) Origins() []string {
	var origins []string
	for _, o := range strings.Split(h.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return origins
}

// Limit is RateLimit as a rate.Limit; zero or less disables rate limiting.
func (h HTTP) Limit() rate.Limit { return rate.Limit(h.RateLimit) }

// Postgres configures the relational store.
type Postgres struct {
	URL         string `env:"DATABASE_URL"`
	Host        string `env:"DATABASE_HOST"`
	Port        string `env:"DATABASE_PORT,default=5432"`
	Name        string `env:"DATABASE_NAME"`
	User        string `env:"DATABASE_USER"`
	Password    string `env:"DATABASE_PASSWORD"`
	SSLMode     string `env:"DATABASE_SSLMODE,default=prefer"`
	MaxIdleCxns int    `env:"DATABASE_MAX_IDLE_CXNS,default=1"`
	MaxOpenCxns int    `env:"DATABASE_MAX_OPEN_CXNS"`
}

// Configured reports whether enough is set to connect to a relational store.
func (p Postgres) Configured() bool { return p.URL != "" || (p.Host != "" && p.Name != "") }

// CxnConfig converts p into what postgres.Connect expects.
func (p Postgres) CxnConfig() *postgres.CxnConfig {
	return &postgres.CxnConfig{
		URL:         p.URL,
		Host:        p.Host,
		Port:        p.Port,
		Name:        p.Name,
		User:        p.User,
		Password:    p.Password,
		SSLMode:     p.SSLMode,
		MaxIdleCxns: p.MaxIdleCxns,
		MaxOpenCxns: p.MaxOpenCxns,
	}
}

// Redis configures store A.
type Redis struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE"`
}

// Configured reports whether a Redis server is addressed.
func (r Redis) Configured() bool { return r.URL != "" || r.Addr != "" }

// Store converts r into what kvstore.Open expects.
func (r Redis) Store() kvstore.Config {
	return kvstore.Config{URL: r.URL, Addr: r.Addr, Password: r.Password, DB: r.DB, PoolSize: r.PoolSize}
}

// Surreal configures store B.
type Surreal struct {
	URL       string `env:"SURREAL_URL"`
	Namespace string `env:"SURREAL_NAMESPACE,default=waypoint"`
	Database  string `env:"SURREAL_DATABASE,default=waypoint"`
	User      string `env:"SURREAL_USER"`
	Password  string `env:"SURREAL_PASSWORD"`
}

// Configured reports whether a SurrealDB server is addressed.
func (s Surreal) Configured() bool { return s.URL != "" }

// Client converts s into what surreal.Connect expects.
func (s Surreal) Client() surreal.Config {
	return surreal.Config{
		URL:       s.URL,
		Namespace: s.Namespace,
		Database:  s.Database,
		User:      s.User,
		Password:  s.Password,
	}
}

// Load decodes the process environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("%w: %s", waypoint.ErrBadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate normalizes cfg and checks settings depending on one another.
func (cfg *Config) Validate() error {
	cfg.Env = waypoint.Environment(strings.ToUpper(strings.TrimSpace(cfg.Env.String())))
	if err := cfg.Env.Valid(); err != nil {
		return fmt.Errorf("%w: ENVIRONMENT %q is %s", waypoint.ErrBadConfig, cfg.Env, err)
	}

	if cfg.Dispatch.InvokeTimeout < 0 {
		return fmt.Errorf("%w: INVOKE_TIMEOUT must not be negative", waypoint.ErrBadConfig)
	}

	if !cfg.Auth.Required {
		return nil
	}

	switch cfg.Auth.Authority {
	case AuthorityJWT:
		if cfg.Auth.JWTKey == "" {
			return fmt.Errorf("%w: JWT_KEY is required by the jwt authority", waypoint.ErrBadConfig)
		}

	case AuthorityRedis:
		if !cfg.Redis.Configured() {
			return fmt.Errorf("%w: REDIS_URL or REDIS_ADDR is required by the redis authority", waypoint.ErrBadConfig)
		}

	case AuthorityGoogle:
		if cfg.Auth.GoogleClientID == "" || cfg.Auth.GoogleSecret == "" {
			return fmt.Errorf("%w: GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required by the google authority", waypoint.ErrBadConfig)
		}

	default:
		return fmt.Errorf("%w: unknown AUTH_AUTHORITY %q", waypoint.ErrBadConfig, cfg.Auth.Authority)
	}

	return nil
}

// Addr is the address the web server listens on.
func (cfg Config) Addr() string {
	port := strings.TrimPrefix(cfg.Port, ":")
	if cfg.Env.IsDevelopment() || cfg.Env.IsTesting() {
		return cfg.Host + ":" + port
	}

	return ":" + port
}
