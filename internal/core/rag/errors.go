// Package rag defines the error taxonomy shared by the ingestion and query
// pipelines. Adapters wrap the underlying cause with fmt.Errorf("...: %w")
// so callers can discriminate with errors.Is while keeping the root cause.
package rag

import "errors"

var (
	// ErrInvalidQuery is returned when a question is empty after trimming
	// whitespace. The question must never reach the embedding service.
	ErrInvalidQuery = errors.New("invalid query: question must not be empty")

	// ErrEmbeddingService is returned when the embedding service fails
	// (network, auth, rate limit after the adapter's own retries).
	ErrEmbeddingService = errors.New("embedding service failure")

	// ErrGenerationService is returned when the generative model fails.
	// It is fatal for the current question only.
	ErrGenerationService = errors.New("generation service failure")

	// ErrStoreUnavailable is returned when the vector store cannot be
	// reached or an operation against it fails.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrDimensionMismatch is returned when a vector's length does not
	// match the store's configured embedding dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
