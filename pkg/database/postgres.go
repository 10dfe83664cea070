// Package database owns the read-only connection pool behind the query
// accessor layer.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/logging"
	"github.com/classsight/insight-engine/pkg/retry"
)

// DB wraps a pgxpool connection pool with read-only session semantics and
// bounded retry on connection-level errors. Checkout from the pool replaces
// the single shared reconnecting handle a naive design would use; a dead
// connection is discarded by the pool and the retry re-checks-out a fresh one.
type DB struct {
	pool   *pgxpool.Pool
	retry  *retry.Config
	logger *zap.Logger
}

// Config holds database connection configuration.
type Config struct {
	URL             string
	MaxConnections  int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// NewConnection creates a new read-only database connection pool.
func NewConnection(ctx context.Context, cfg *Config, logger *zap.Logger) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	if poolConfig.MaxConns == 0 {
		poolConfig.MaxConns = 10
	}

	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	if poolConfig.MaxConnLifetime == 0 {
		poolConfig.MaxConnLifetime = time.Hour
	}

	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	if poolConfig.MaxConnIdleTime == 0 {
		poolConfig.MaxConnIdleTime = time.Minute * 30
	}

	// Every session is read-only. A failed statement cannot leave behind an
	// aborted transaction that poisons later statements on the same
	// connection, and no accessor can write even if the SQL slips through.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, "SET default_transaction_read_only = on")
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database pool ready",
		zap.String("url", logging.SanitizeConnectionString(cfg.URL)),
		zap.Int32("max_conns", poolConfig.MaxConns))

	return &DB{
		pool:   pool,
		retry:  retry.DefaultConfig(),
		logger: logger,
	}, nil
}

// QueryMaps executes a parameterized query and returns the rows as ordered
// column-name keyed maps. Connection-level failures are retried once on a
// fresh pool checkout; other errors surface immediately.
func (db *DB) QueryMaps(ctx context.Context, sqlQuery string, args ...any) ([]map[string]any, error) {
	var result []map[string]any
	err := retry.DoIfRetryable(ctx, db.retry, func() error {
		rows, err := db.pool.Query(ctx, sqlQuery, args...)
		if err != nil {
			db.logger.Debug("query failed",
				zap.String("query", logging.SanitizeQuery(sqlQuery)),
				zap.String("error", logging.SanitizeError(err)))
			return fmt.Errorf("failed to execute query: %w", err)
		}
		defer rows.Close()

		fieldDescs := rows.FieldDescriptions()
		columns := make([]string, len(fieldDescs))
		for i, fd := range fieldDescs {
			columns[i] = string(fd.Name)
		}

		resultRows := make([]map[string]any, 0)
		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				return fmt.Errorf("failed to read row values: %w", err)
			}

			rowMap := make(map[string]any, len(columns))
			for i, col := range columns {
				rowMap[col] = values[i]
			}
			resultRows = append(resultRows, rowMap)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("row iteration failed: %w", err)
		}

		result = resultRows
		return nil
	})
	return result, err
}

// Ping verifies database connectivity.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.pool.Close()
}
