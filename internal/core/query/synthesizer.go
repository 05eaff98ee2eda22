package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LLMClient is the generative model collaborator. Implementations own the
// model name and sampling parameters (temperature is fixed at 0 for this
// system) and wrap failures in rag.ErrGenerationService.
type LLMClient interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// TokenCounter counts model tokens in a text span.
type TokenCounter interface {
	CountTokens(text string) int
}

// Synthesizer builds the grounded prompt from retrieved passages and invokes
// the generative model. An empty context still goes to the model: the prompt
// wording forces the refusal answer, so the code path stays uniform.
type Synthesizer struct {
	llm              LLMClient
	counter          TokenCounter
	maxContextTokens int
	logger           *slog.Logger
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithContextBudget caps the retrieved context at maxTokens, dropping the
// lowest-ranked passages that would exceed it. The top passage is always
// kept. Requires a TokenCounter; 0 disables the cap.
func WithContextBudget(counter TokenCounter, maxTokens int) SynthesizerOption {
	return func(s *Synthesizer) {
		s.counter = counter
		s.maxContextTokens = maxTokens
	}
}

// WithSynthesizerLogger sets the logger used by the Synthesizer.
func WithSynthesizerLogger(logger *slog.Logger) SynthesizerOption {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// NewSynthesizer creates a new Synthesizer.
func NewSynthesizer(llm LLMClient, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		llm:    llm,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize answers the question from the retrieved context. The returned
// string is either a grounded answer or RefusalAnswer; a generation failure
// is fatal for this question only.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, retrieved []ScoredPassage) (string, error) {
	passages := s.applyBudget(retrieved)

	prompt := BuildPrompt(question, passages)
	if s.counter != nil {
		s.logger.Info("prompt built", "passages", len(passages), "promptTokens", s.counter.CountTokens(prompt))
	} else {
		s.logger.Info("prompt built", "passages", len(passages))
	}

	answer, err := s.llm.GenerateCompletion(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

// applyBudget trims lowest-ranked passages past the configured token budget.
func (s *Synthesizer) applyBudget(passages []ScoredPassage) []ScoredPassage {
	if s.counter == nil || s.maxContextTokens <= 0 || len(passages) == 0 {
		return passages
	}

	total := 0
	kept := passages[:0:0]
	for i, p := range passages {
		total += s.counter.CountTokens(p.Passage.Content)
		if i > 0 && total > s.maxContextTokens {
			s.logger.Info("context budget reached",
				"budget", s.maxContextTokens,
				"kept", len(kept),
				"dropped", len(passages)-len(kept),
			)
			break
		}
		kept = append(kept, p)
	}
	return kept
}
