// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the persistence layer of the registry. A single *DB wraps
// the database/sql pool of either PostgreSQL (pgx) or SQLite, and the
// repositories build their statements with squirrel for that dialect.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-student-registry/internal/config"
	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/migrations"
)

// Dialect names the SQL flavour behind a *DB. Values match goose dialects.
type Dialect string

const (
	DialectPostgres Dialect = migrations.DialectPostgres
	DialectSQLite   Dialect = migrations.DialectSQLite
)

const (
	defaultTxRetries   = 3
	defaultTxRetryBase = 50 * time.Millisecond
)

// DB is the shared connection pool. It is created once in main, handed to
// every repository and closed at shutdown.
type DB struct {
	*sql.DB
	dialect            Dialect
	queries            queries
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	txRetries   uint64
	txRetryBase time.Duration
}

// Open connects to the database selected by cfg.DSN: a postgres:// or
// postgresql:// URL opens PostgreSQL through pgx, anything else is a SQLite
// file path.
func Open(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case cfg.DSN == "":
		return nil, ErrUnsupportedDSN
	case IsPostgresDSN(cfg.DSN):
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

// IsPostgresDSN reports whether dsn selects the PostgreSQL driver.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func newDB(conn *sql.DB, dialect Dialect, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		queries:            newQueries(dialect),
		errorClassificator: classifier,
		logger:             log,
		txRetries:          defaultTxRetries,
		txRetryBase:        defaultTxRetryBase,
	}
}

// Dialect returns the SQL dialect of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema migrations for the connection dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// Close releases the pool.
func (db *DB) Close() error {
	db.logger.Info().Str("func", "*DB.Close").Msg("closing database")
	return db.DB.Close()
}

// WithinTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise. Failures classified as [Retryable]
// re-run the whole transaction with exponential backoff.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	backoff := retry.WithMaxRetries(db.txRetries, retry.NewExponential(db.txRetryBase))
	attempt := 0

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := db.runTx(ctx, fn)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			log.Warn().Err(err).
				Str("func", "*DB.WithinTx").
				Int("attempt", attempt).
				Msg("retryable transaction failure")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (db *DB) runTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// execAffected runs a single statement in a transaction and returns the
// number of affected rows.
func (db *DB) execAffected(ctx context.Context, query string, args []any) (int64, error) {
	var affected int64
	err := db.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return nil
	})
	return affected, err
}

// pingWithRetry checks connectivity, retrying transient failures while the
// database is still starting.
func pingWithRetry(ctx context.Context, conn *sql.DB, classifier ErrorClassificator) error {
	backoff := retry.WithMaxRetries(defaultTxRetries, retry.NewExponential(100*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := conn.PingContext(ctx)
		if err != nil && classifier.Classify(err) == Retryable {
			return retry.RetryableError(err)
		}
		return err
	})
}
