package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docchat/docchat/internal/core/rag"
)

// DefaultK is the retrieval width used when none is configured.
const DefaultK = 10

// Embedder converts a single query text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher returns the k stored passages nearest to the query vector,
// ordered by ascending distance.
type Searcher interface {
	Search(ctx context.Context, vector []float32, k int, filter SearchFilter) ([]ScoredPassage, error)
}

// Retriever embeds a question and fetches its nearest passages. Every call
// re-embeds and re-queries; nothing is cached across calls.
type Retriever struct {
	embedder Embedder
	searcher Searcher
	k        int
	logger   *slog.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithRetrievalK overrides the default retrieval width.
func WithRetrievalK(k int) RetrieverOption {
	return func(r *Retriever) {
		if k > 0 {
			r.k = k
		}
	}
}

// WithRetrieverLogger sets the logger used by the Retriever.
func WithRetrieverLogger(logger *slog.Logger) RetrieverOption {
	return func(r *Retriever) {
		r.logger = logger
	}
}

// NewRetriever creates a new Retriever.
func NewRetriever(embedder Embedder, searcher Searcher, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		embedder: embedder,
		searcher: searcher,
		k:        DefaultK,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve validates the question, embeds it and searches the store.
// An empty or whitespace-only question fails with rag.ErrInvalidQuery
// before any call to the embedding service.
func (r *Retriever) Retrieve(ctx context.Context, question string, filter SearchFilter) ([]ScoredPassage, error) {
	if strings.TrimSpace(question) == "" {
		return nil, rag.ErrInvalidQuery
	}

	vector, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := r.searcher.Search(ctx, vector, r.k, filter)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	r.logger.Info("retrieval completed", "k", r.k, "hits", len(results))
	return results, nil
}

// K returns the configured retrieval width.
func (r *Retriever) K() int {
	return r.k
}
