// Package db provides PostgreSQL access for the persistent embedding cache.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool     *pgxpool.Pool
	cacheTTL time.Duration
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, cacheTTL: DefaultEmbeddingCacheTTL}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// SetCacheTTL sets how long newly saved embeddings stay valid. Zero or negative means no expiry.
func (db *DB) SetCacheTTL(ttl time.Duration) {
	db.cacheTTL = ttl
}

// CacheTTL returns the TTL applied to newly saved embeddings.
func (db *DB) CacheTTL() time.Duration {
	return db.cacheTTL
}
