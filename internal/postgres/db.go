// Package postgres is the data access layer. It owns the connection pool
// handle, a transaction wrapper, and the SQL statements behind the product
// and cart stores. Everything above it treats the database as the single
// source of truth.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool matches the methods we use from *pgxpool.Pool. Declared as an
// interface so pgxmock can stand in during tests.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Queryable is the subset of query methods shared by a pool and an open
// transaction, so store helpers can run in either.
type Queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// DB wraps an injected connection pool. The pool is constructed at process
// start and closed at shutdown by the caller; nothing here holds
// process-wide state.
type DB struct {
	pool   Pool
	logger *slog.Logger
}

func NewDB(pool Pool, logger *slog.Logger) *DB {
	return &DB{pool: pool, logger: logger}
}

// Pool returns the underlying pool for single-statement reads.
func (db *DB) Pool() Queryable {
	return db.pool
}

// Ping verifies connectivity.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close releases the pool.
func (db *DB) Close() {
	db.pool.Close()
}

// WithTx runs fn inside one transaction: begin, fn, commit on success,
// rollback on any failure. The error from fn propagates unchanged; there
// are no retries, so a transient connection failure is a hard failure for
// the calling request.
func (db *DB) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		db.logger.Error("failed to begin transaction", "error", err)
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		db.logger.Error("failed to commit transaction", "error", err)
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
