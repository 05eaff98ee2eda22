// Package postgres implements the vector store adapter on PostgreSQL with
// the pgvector extension. One row per embedding record; nearest-neighbor
// search uses cosine distance, matching the HNSW index created by
// EnsureSchema.
package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/docchat/docchat/internal/core/ingestion"
	"github.com/docchat/docchat/internal/core/query"
	"github.com/docchat/docchat/internal/core/rag"
)

// tableNamePattern restricts the configured collection name to a safe SQL
// identifier, since identifiers cannot be bound as query parameters.
var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Store persists embedding records in a single pgvector-backed table.
type Store struct {
	pool      *pgxpool.Pool
	table     string
	dimension int
}

// NewStore creates a Store over the given pool. table is the configured
// collection name; dimension is the embedding dimensionality every stored
// and queried vector must match.
func NewStore(pool *pgxpool.Pool, table string, dimension int) (*Store, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid collection name %q", table)
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dimension)
	}
	return &Store{pool: pool, table: table, dimension: dimension}, nil
}

// EnsureSchema creates the vector extension, the collection table and its
// cosine HNSW index if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id uuid PRIMARY KEY,
			source_id text NOT NULL,
			ordinal integer NOT NULL,
			content text NOT NULL,
			embedding vector(%d) NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, s.table, s.dimension),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_source_id_idx ON %s (source_id)`, s.table, s.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_embedding_idx ON %s USING hnsw (embedding vector_cosine_ops)`, s.table, s.table),
	}

	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: failed to ensure schema: %v", rag.ErrStoreUnavailable, err)
		}
	}
	return nil
}

// UpsertBatch writes the records in one round-trip and returns the number
// written. Records are inserted as new rows: re-ingesting a source without
// clearing it first produces duplicate coexisting records.
func (s *Store) UpsertBatch(ctx context.Context, records []ingestion.EmbeddingRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	for i, rec := range records {
		if len(rec.Vector) != s.dimension {
			return 0, fmt.Errorf("%w: record %d has dimension %d, store expects %d",
				rag.ErrDimensionMismatch, i, len(rec.Vector), s.dimension)
		}
	}

	sql := fmt.Sprintf(
		`INSERT INTO %s (id, source_id, ordinal, content, embedding) VALUES ($1, $2, $3, $4, $5)`,
		s.table,
	)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(sql, rec.ID, rec.Passage.SourceID, rec.Passage.Ordinal, rec.Passage.Content, pgvector.NewVector(rec.Vector))
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range records {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("%w: failed to insert record %d: %v", rag.ErrStoreUnavailable, i, err)
		}
	}
	return len(records), nil
}

// Search returns up to k passages nearest to the query vector by cosine
// distance, ascending (most similar first). Fewer than k rows come back when
// the store holds fewer records.
func (s *Store) Search(ctx context.Context, vector []float32, k int, filter query.SearchFilter) ([]query.ScoredPassage, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, store expects %d",
			rag.ErrDimensionMismatch, len(vector), s.dimension)
	}

	sql := fmt.Sprintf(
		`SELECT source_id, ordinal, content, embedding <=> $1 AS distance FROM %s`,
		s.table,
	)
	args := []any{pgvector.NewVector(vector)}

	if sourceID, ok := filter.SourceID.Get(); ok {
		sql += ` WHERE source_id = $2`
		args = append(args, sourceID)
	}
	sql += fmt.Sprintf(` ORDER BY distance LIMIT %d`, k)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: search failed: %v", rag.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var results []query.ScoredPassage
	for rows.Next() {
		var sp query.ScoredPassage
		if err := rows.Scan(&sp.Passage.SourceID, &sp.Passage.Ordinal, &sp.Passage.Content, &sp.Distance); err != nil {
			return nil, fmt.Errorf("%w: failed to scan search row: %v", rag.ErrStoreUnavailable, err)
		}
		results = append(results, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: search failed: %v", rag.ErrStoreUnavailable, err)
	}
	return results, nil
}

// DeleteBySource removes every record of the given source and returns the
// number of rows deleted.
func (s *Store) DeleteBySource(ctx context.Context, sourceID string) (int64, error) {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE source_id = $1`, s.table), sourceID)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to delete records for source %q: %v", rag.ErrStoreUnavailable, sourceID, err)
	}
	return tag.RowsAffected(), nil
}

// CountBySource returns the number of records stored for the given source.
func (s *Store) CountBySource(ctx context.Context, sourceID string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s WHERE source_id = $1`, s.table), sourceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to count records for source %q: %v", rag.ErrStoreUnavailable, sourceID, err)
	}
	return count, nil
}

var (
	_ ingestion.Store = (*Store)(nil)
	_ query.Searcher  = (*Store)(nil)
)
