// Package container wires configuration into the concrete services. Every
// external collaborator (embedder, LLM, store, loader, token counter) can be
// swapped through an option, so tests run the real pipelines against fakes.
package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docchat/docchat/internal/core/ingestion"
	"github.com/docchat/docchat/internal/core/query"
	"github.com/docchat/docchat/internal/infra/loader"
	"github.com/docchat/docchat/internal/infra/openai"
	"github.com/docchat/docchat/internal/infra/postgres"
	"github.com/docchat/docchat/internal/infra/tokenizer"
	"github.com/docchat/docchat/internal/platform/config"
	"github.com/docchat/docchat/internal/platform/database"
)

// Embedder combines the ingestion-side and query-side embedding interfaces;
// one adapter serves both phases.
type Embedder interface {
	ingestion.Embedder
	query.Embedder
}

// VectorStore combines the store interfaces both pipelines rely on.
type VectorStore interface {
	ingestion.Store
	query.Searcher
}

// Container holds the wired services and owns the database lifetime.
type Container struct {
	IngestService *ingestion.Service
	Retriever     *query.Retriever
	QueryPipeline *query.Pipeline

	logger   *slog.Logger
	database *database.Database
}

type containerOptions struct {
	logger       *slog.Logger
	embedder     Embedder
	llm          query.LLMClient
	store        VectorStore
	loader       ingestion.DocumentLoader
	tokenCounter query.TokenCounter
}

// Option configures container construction.
type Option func(*containerOptions)

// WithLogger sets the container logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *containerOptions) {
		o.logger = logger
	}
}

// WithEmbedder injects a custom embedder.
func WithEmbedder(embedder Embedder) Option {
	return func(o *containerOptions) {
		o.embedder = embedder
	}
}

// WithLLMClient injects a custom generative model client.
func WithLLMClient(llm query.LLMClient) Option {
	return func(o *containerOptions) {
		o.llm = llm
	}
}

// WithStore injects a custom vector store; no database connection is opened.
func WithStore(store VectorStore) Option {
	return func(o *containerOptions) {
		o.store = store
	}
}

// WithDocumentLoader injects a custom document loader.
func WithDocumentLoader(l ingestion.DocumentLoader) Option {
	return func(o *containerOptions) {
		o.loader = l
	}
}

// WithTokenCounter injects a custom token counter.
func WithTokenCounter(counter query.TokenCounter) Option {
	return func(o *containerOptions) {
		o.tokenCounter = counter
	}
}

// New builds the service graph from cfg. Unless a store is injected it
// connects to PostgreSQL and bootstraps the collection schema.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	options := containerOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{logger: logger}

	store := options.store
	if store == nil {
		db, err := database.New(ctx, cfg.Database.ConnString())
		if err != nil {
			return nil, err
		}

		pgStore, err := postgres.NewStore(db.Pool, cfg.Collection, cfg.OpenAI.EmbeddingDimension)
		if err != nil {
			db.Close()
			return nil, err
		}
		if err := pgStore.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}

		c.database = db
		store = pgStore
	}

	embedder := options.embedder
	if embedder == nil {
		embedder = openai.NewEmbedder(cfg.OpenAI.APIKey,
			openai.WithEmbeddingModel(cfg.OpenAI.EmbeddingModel),
			openai.WithEmbeddingDimension(cfg.OpenAI.EmbeddingDimension),
		)
	}

	llm := options.llm
	if llm == nil {
		client, err := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.LLMModel, cfg.OpenAI.Temperature)
		if err != nil {
			c.Close()
			return nil, err
		}
		llm = client
	}

	docLoader := options.loader
	if docLoader == nil {
		docLoader = loader.NewTextLoader()
	}

	c.IngestService = ingestion.NewService(docLoader, embedder, store,
		ingestion.WithServiceLogger(logger),
	)

	c.Retriever = query.NewRetriever(embedder, store,
		query.WithRetrievalK(cfg.Search.K),
		query.WithRetrieverLogger(logger),
	)

	synthOpts := []query.SynthesizerOption{query.WithSynthesizerLogger(logger)}
	if cfg.Search.MaxContextTokens > 0 {
		counter := options.tokenCounter
		if counter == nil {
			var err error
			counter, err = tokenizer.NewCounter()
			if err != nil {
				c.Close()
				return nil, fmt.Errorf("failed to initialize token counter: %w", err)
			}
		}
		synthOpts = append(synthOpts, query.WithContextBudget(counter, cfg.Search.MaxContextTokens))
	}
	synthesizer := query.NewSynthesizer(llm, synthOpts...)

	c.QueryPipeline = query.NewPipeline(c.Retriever, synthesizer,
		query.WithPipelineLogger(logger),
	)

	return c, nil
}

// Logger returns the container logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Close releases the resources the container owns.
func (c *Container) Close() {
	if c.database != nil {
		c.database.Close()
	}
}
