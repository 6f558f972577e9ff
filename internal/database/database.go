// Package database opens and owns the connection pool for a profile.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Harshitk-cp/casebook/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	defaultMaxConns = 10
	defaultMinConns = 2
)

var (
	ErrUnsupportedClient = errors.New("unsupported database client")
	ErrMissingURL        = errors.New("database url is required")
)

// ConnectError wraps a failed connection attempt. It is not retried.
type ConnectError struct {
	Profile string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect to %s database: %v", e.Profile, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB is the process's database handle. It is created once by the entry point,
// handed to every consumer and closed on exit.
type DB struct {
	sqlDB   *sql.DB
	pool    *pgxpool.Pool
	dialect Dialect
	profile string
	logger  *zap.Logger
}

// Open connects using p and verifies the connection with a ping.
func Open(ctx context.Context, p config.Profile, logger *zap.Logger) (*DB, error) {
	if strings.TrimSpace(p.URL) == "" {
		return nil, fmt.Errorf("profile %s: %w", p.Name, ErrMissingURL)
	}

	dialect, err := DialectFor(p.Client)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	var db *DB
	switch dialect.Name() {
	case config.ClientSQLite:
		db, err = openSQLite(ctx, p)
	default:
		db, err = openPostgres(ctx, p)
	}
	if err != nil {
		return nil, err
	}

	db.dialect = dialect
	db.profile = p.Name
	db.logger = logger
	logger.Info("connected to database",
		zap.String("profile", p.Name),
		zap.String("client", dialect.Name()),
	)
	return db, nil
}

func openPostgres(ctx context.Context, p config.Profile) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(p.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	poolConfig.MaxConns = defaultMaxConns
	poolConfig.MinConns = defaultMinConns
	if p.Pool.MaxConns > 0 {
		poolConfig.MaxConns = p.Pool.MaxConns
	}
	if p.Pool.MinConns > 0 {
		poolConfig.MinConns = p.Pool.MinConns
	}
	if poolConfig.MinConns > poolConfig.MaxConns {
		poolConfig.MinConns = poolConfig.MaxConns
	}
	if p.Pool.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = p.Pool.MaxConnLifetime
	}
	if p.Pool.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = p.Pool.HealthCheckPeriod
	}

	if p.Schema != "" {
		poolConfig.ConnConfig.RuntimeParams["search_path"] = p.Schema
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, &ConnectError{Profile: p.Name, Err: err}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &ConnectError{Profile: p.Name, Err: err}
	}

	return &DB{sqlDB: stdlib.OpenDBFromPool(pool), pool: pool}, nil
}

func openSQLite(ctx context.Context, p config.Profile) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", p.URL)
	if err != nil {
		return nil, &ConnectError{Profile: p.Name, Err: err}
	}

	// Single connection for SQLite to avoid locking issues; it also keeps
	// :memory: databases alive for the life of the handle.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, pragma); err != nil {
			_ = sqlDB.Close()
			return nil, &ConnectError{Profile: p.Name, Err: fmt.Errorf("exec %q: %w", pragma, err)}
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectError{Profile: p.Name, Err: err}
	}

	return &DB{sqlDB: sqlDB}, nil
}

func (d *DB) SQL() *sql.DB {
	return d.sqlDB
}

func (d *DB) Dialect() Dialect {
	return d.dialect
}

func (d *DB) Profile() string {
	return d.profile
}

func (d *DB) Ping(ctx context.Context) error {
	return d.sqlDB.PingContext(ctx)
}

// WithTx runs fn inside a single transaction. The transaction is rolled back
// when fn returns an error or panics, and committed otherwise.
func (d *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			d.logger.Warn("rollback failed", zap.String("profile", d.profile), zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close drains the pool. It is safe to call on a nil handle.
func (d *DB) Close() error {
	if d == nil || d.sqlDB == nil {
		return nil
	}
	err := d.sqlDB.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	if d.logger != nil {
		d.logger.Info("database connection closed", zap.String("profile", d.profile))
	}
	return err
}
