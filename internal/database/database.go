// Package database opens the PostgreSQL pool behind the submission intake.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"sellerverify/internal/config"
	"sellerverify/internal/intake"
)

// applicationName tags our sessions in pg_stat_activity.
const applicationName = "sellerverify"

// ErrInvalidConfig reports a DatabaseConfig that cannot address a server.
var ErrInvalidConfig = errors.New("invalid database config")

var (
	sqlOpen = sql.Open

	// otelsql hands out a fresh driver name per Register call, so the pgx wrapper is registered once.
	registerDriver = sync.OnceValues(func() (string, error) {
		return otelsql.Register("pgx",
			otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
			otelsql.WithSQLCommenter(true),
		)
	})
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// BuildPostgresDSN renders c as a postgres:// URL. ConnectTimeout becomes connect_timeout
// (whole seconds, rounded up) and StatementTimeout becomes statement_timeout in milliseconds.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return "", fmt.Errorf("%w: host, port, user and name are required", ErrInvalidConfig)
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	q.Set("application_name", applicationName)
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(math.Ceil(c.ConnectTimeout.Seconds()))))
	}
	if c.StatementTimeout > 0 {
		q.Set("statement_timeout", strconv.FormatInt(c.StatementTimeout.Milliseconds(), 10))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Ping checks p within timeout (no bound when timeout is 0).
// Failures wrap intake.ErrUnavailable so callers share the intake's retry model.
func Ping(ctx context.Context, p Pinger, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := p.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: db ping: %w", intake.ErrUnavailable, err)
	}
	return nil
}

func configurePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.ConnMaxLifetime)
	}
}

// NewPostgres opens a traced pgx pool and checks it within c.ConnectTimeout.
// An unreachable server yields an error matching intake.ErrUnavailable.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := registerDriver()
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	configurePool(db, c)

	if err := Ping(ctx, db, c.ConnectTimeout); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
