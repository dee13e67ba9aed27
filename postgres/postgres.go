package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/waypoint"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// PG Docs: https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-PARAMKEYWORDS
const cxnStr = "host=%s port=%s dbname=%s user=%s password=%s sslmode=%s"

// CxnConfig holds connection information used to connect to a PostgreSQL database.
type CxnConfig struct {
	URL         string
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxIdleCxns int
	MaxOpenCxns int
}

// A Pool is the process wide set of connections to a PostgreSQL database.
// Requests pin a single connection with Acquire.
type Pool struct {
	db *gorm.DB
}

// Connect opens a *Pool according to the connection config.
func Connect(config *CxnConfig, env waypoint.Environment) (*Pool, error) {
	db, err := Open(postgres.Open(buildCxnStr(config)), env)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConnection, err)
	}

	if config.MaxIdleCxns > 0 {
		sqlDB.SetMaxIdleConns(config.MaxIdleCxns)
	}

	if config.MaxOpenCxns > 0 {
		sqlDB.SetMaxOpenConns(config.MaxOpenCxns)
	}

	return NewPool(db), nil
}

// Open opens a *gorm.DB through the dialector, configured the same way for every environment
// except for colorful logs in development.
func Open(dialector gorm.Dialector, env waypoint.Environment) (*gorm.DB, error) {
	// https://gorm.io/docs/logger.html
	c := logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  env.IsDevelopment(),
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), c),
		NamingStrategy: schema.NamingStrategy{
			NameReplacer: strings.NewReplacer("Table", ""),
		},
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
		SkipDefaultTransaction: true,
	})
}

// NewPool constructs a *Pool from a *gorm.DB.
func NewPool(db *gorm.DB) *Pool { return &Pool{db: db} }

// Acquire pins one connection out of the pool for the exclusive use of the caller.
// The caller must call Release on the *Conn.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	sqlDB, err := p.db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConnection, err)
	}

	cxn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConnection, err)
	}

	// NOTE: WithContext clones the statement,
	// so pinning the connection does not leak into the pool's *gorm.DB.
	gdb := p.db.WithContext(ctx)
	gdb.Statement.ConnPool = cxn

	return NewConn(gdb, cxn.Close), nil
}

// DB returns a *DB querying across the whole pool rather than a pinned connection.
func (p *Pool) DB() *DB { return &DB{db: p.db} }

// Close closes every connection in the pool.
func (p *Pool) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func buildCxnStr(config *CxnConfig) string {
	if config.URL != "" {
		return config.URL
	}

	if config.SSLMode == "" {
		// PG Docs: https://www.postgresql.org/docs/current/libpq-ssl.html#LIBPQ-SSL-SSLMODE-STATEMENTS
		config.SSLMode = "prefer"
	}

	return fmt.Sprintf(
		cxnStr,
		config.Host,
		config.Port,
		config.Name,
		config.User,
		config.Password,
		config.SSLMode,
	)
}
