package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docchat/docchat/internal/core/rag"
)

// Database holds the connection pool.
type Database struct {
	Pool *pgxpool.Pool
}

// New opens a pool for the connection string and verifies connectivity.
// Failures wrap rag.ErrStoreUnavailable so callers see the taxonomy error
// instead of driver internals.
func New(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create connection pool: %v", rag.ErrStoreUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", rag.ErrStoreUnavailable, err)
	}

	return &Database{Pool: pool}, nil
}

// Close closes the pool.
func (db *Database) Close() {
	db.Pool.Close()
}
