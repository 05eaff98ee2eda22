package query

import (
	"context"
	"log/slog"
)

// Pipeline is the single entry point for answering questions: retrieve the
// nearest passages, then synthesize a grounded answer from them. It holds no
// mutable state and never writes to the store.
type Pipeline struct {
	retriever   *Retriever
	synthesizer *Synthesizer
	logger      *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger sets the logger used by the Pipeline.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a new query Pipeline.
func NewPipeline(retriever *Retriever, synthesizer *Synthesizer, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		retriever:   retriever,
		synthesizer: synthesizer,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Answer returns a grounded answer for the question, or the refusal answer
// when the ingested document does not cover it.
func (p *Pipeline) Answer(ctx context.Context, question string) (string, error) {
	results, err := p.retriever.Retrieve(ctx, question, SearchFilter{})
	if err != nil {
		return "", err
	}

	answer, err := p.synthesizer.Synthesize(ctx, question, results)
	if err != nil {
		return "", err
	}

	p.logger.Info("question answered", "hits", len(results), "answerLength", len(answer))
	return answer, nil
}
