package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// DocumentLoader is the external parser collaborator. It turns a file path
// into an ordered sequence of page texts and a source identifier.
type DocumentLoader interface {
	Load(ctx context.Context, path string) (*Document, error)
}

// Embedder converts text into fixed-length vectors, one per input, same order.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) ([][]float32, error)
	// MaxBatchSize is the largest number of texts one BatchEmbed call accepts.
	MaxBatchSize() int
}

// Store persists embedding records and supports clearing a source's records.
type Store interface {
	UpsertBatch(ctx context.Context, records []EmbeddingRecord) (int, error)
	DeleteBySource(ctx context.Context, sourceID string) (int64, error)
}

// Service runs the ingestion pipeline: load -> segment -> embed -> upsert,
// sequentially, in document order. A failed step aborts the run; records
// already committed by a prior upsert are not rolled back.
type Service struct {
	loader   DocumentLoader
	embedder Embedder
	store    Store
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used by the Service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new ingestion Service.
func NewService(loader DocumentLoader, embedder Embedder, store Store, opts ...ServiceOption) *Service {
	svc := &Service{
		loader:   loader,
		embedder: embedder,
		store:    store,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Params describes one ingestion run.
type Params struct {
	Path         string
	SourceID     string // overrides the loader's source id when non-empty
	ChunkSize    int
	ChunkOverlap int
	// Reset clears existing records for the source before upserting. Without
	// it, re-ingesting the same source produces duplicate coexisting records.
	Reset bool
}

// Ingest executes the pipeline for a single document and returns a summary
// with the number of chunks written.
func (s *Service) Ingest(ctx context.Context, params Params) (*Summary, error) {
	doc, err := s.loader.Load(ctx, params.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	sourceID := doc.SourceID
	if params.SourceID != "" {
		sourceID = params.SourceID
	}

	s.logger.Info("document loaded",
		"sourceID", sourceID,
		"pages", len(doc.Pages),
		"chunkSize", params.ChunkSize,
		"chunkOverlap", params.ChunkOverlap,
	)

	passages, err := Segment(strings.Join(doc.Pages, "\n\n"), sourceID, params.ChunkSize, params.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("failed to segment document: %w", err)
	}
	if len(passages) == 0 {
		return nil, fmt.Errorf("document %q produced no chunks", sourceID)
	}

	s.logger.Info("document segmented", "sourceID", sourceID, "chunks", len(passages))

	vectors, err := s.embedAll(ctx, passages)
	if err != nil {
		return nil, err
	}

	records := make([]EmbeddingRecord, len(passages))
	for i, passage := range passages {
		records[i] = EmbeddingRecord{
			ID:      uuid.New(),
			Passage: passage,
			Vector:  vectors[i],
		}
	}

	var removed int64
	if params.Reset {
		removed, err = s.store.DeleteBySource(ctx, sourceID)
		if err != nil {
			return nil, fmt.Errorf("failed to clear records for source %q: %w", sourceID, err)
		}
		s.logger.Info("cleared previous records", "sourceID", sourceID, "removed", removed)
	}

	written, err := s.store.UpsertBatch(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("failed to store records: %w", err)
	}

	s.logger.Info("ingestion completed", "sourceID", sourceID, "written", written)

	return &Summary{
		SourceID:   sourceID,
		PageCount:  len(doc.Pages),
		ChunkCount: written,
		Removed:    removed,
	}, nil
}

// embedAll embeds every passage in document order, batching calls to the
// embedding service to reduce round-trips.
func (s *Service) embedAll(ctx context.Context, passages []Passage) ([][]float32, error) {
	batchSize := s.embedder.MaxBatchSize()
	if batchSize <= 0 {
		batchSize = len(passages)
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Content
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))

		batch, err := s.embedder.BatchEmbed(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks %d-%d: %w", start, end-1, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(batch), end-start)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}
