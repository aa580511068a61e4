package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	Pool *sql.DB
}

// Open opens (or creates) the database at path, registers the SQL
// functions the queries need and applies migrations.
func Open(path string, busyTimeoutMS int) (*DB, error) {
	if err := registerFunctions(); err != nil {
		return nil, err
	}
	if busyTimeoutMS <= 0 {
		busyTimeoutMS = 5000
	}
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", path, busyTimeoutMS)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, classify(err)
	}

	// one connection: sqlite wants a single writer, and batch jobs page by
	// key instead of holding cursors open
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, classify(err)
	}

	if err := Migrate(pool); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.Pool == nil {
		return ErrUnavailable
	}
	return classify(d.Pool.PingContext(ctx))
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}
