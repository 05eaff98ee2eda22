package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/docchat/docchat/internal/core/ingestion"
	"github.com/docchat/docchat/internal/core/query"
	"github.com/docchat/docchat/internal/core/rag"
)

const (
	// DefaultEmbeddingModel is used when no model is configured.
	DefaultEmbeddingModel = "text-embedding-3-small"
	// DefaultEmbeddingDimension is the model's native dimension.
	DefaultEmbeddingDimension = 1536

	// maxEmbeddingBatch is the API limit on inputs per request.
	maxEmbeddingBatch = 100
)

// Embedder converts text into vectors through the OpenAI embeddings API.
type Embedder struct {
	client    openai.Client
	model     string
	dimension int
}

type embedderOptions struct {
	model     string
	dimension int
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*embedderOptions)

// WithEmbeddingModel overrides the embedding model name.
func WithEmbeddingModel(model string) EmbedderOption {
	return func(o *embedderOptions) {
		o.model = model
	}
}

// WithEmbeddingDimension overrides the vector dimension.
func WithEmbeddingDimension(dimension int) EmbedderOption {
	return func(o *embedderOptions) {
		o.dimension = dimension
	}
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(apiKey string, opts ...EmbedderOption) *Embedder {
	options := embedderOptions{
		model:     DefaultEmbeddingModel,
		dimension: DefaultEmbeddingDimension,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Embedder{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     options.model,
		dimension: options.dimension,
	}
}

// Embed generates the embedding for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.BatchEmbed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned", rag.ErrEmbeddingService)
	}
	return embeddings[0], nil
}

// BatchEmbed generates embeddings for up to MaxBatchSize texts in one call,
// preserving input order.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}
	if len(texts) > maxEmbeddingBatch {
		return nil, fmt.Errorf("batch size %d exceeds maximum of %d", len(texts), maxEmbeddingBatch)
	}

	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
	}
	if len(texts) == 1 {
		params.Input = openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(texts[0]),
		}
	} else {
		params.Input = openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		}
	}
	if e.dimension > 0 {
		params.Dimensions = openai.Int(int64(e.dimension))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rag.ErrEmbeddingService, err)
	}

	embeddings := make([][]float32, 0, len(resp.Data))
	for _, data := range resp.Data {
		vector := make([]float32, len(data.Embedding))
		for i, v := range data.Embedding {
			vector[i] = float32(v)
		}
		embeddings = append(embeddings, vector)
	}

	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", rag.ErrEmbeddingService, len(embeddings), len(texts))
	}
	return embeddings, nil
}

// ModelName returns the embedding model name.
func (e *Embedder) ModelName() string {
	return e.model
}

// Dimension returns the vector dimension.
func (e *Embedder) Dimension() int {
	return e.dimension
}

// MaxBatchSize returns the API limit on inputs per request.
func (e *Embedder) MaxBatchSize() int {
	return maxEmbeddingBatch
}

var (
	_ ingestion.Embedder = (*Embedder)(nil)
	_ query.Embedder     = (*Embedder)(nil)
)
