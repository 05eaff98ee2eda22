package query

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat/docchat/internal/core/ingestion"
	"github.com/docchat/docchat/internal/core/rag"
)

// groundedLLM imitates a model that honors the grounding contract: it answers
// with the revenue figure only when the prompt's context block carries it and
// refuses otherwise.
type groundedLLM struct{ calls int }

func (l *groundedLLM) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	l.calls++
	contextBlock := prompt[:strings.Index(prompt, "REGRAS:")]
	if strings.Contains(contextBlock, "548.789.613,65") {
		return "O faturamento da empresa Alfa foi R$ 548.789.613,65.", nil
	}
	return RefusalAnswer, nil
}

func newTestPipeline(llm LLMClient, searcher Searcher) *Pipeline {
	retriever := NewRetriever(&stubEmbedder{}, searcher, WithRetrieverLogger(testLogger()))
	synthesizer := NewSynthesizer(llm, WithSynthesizerLogger(testLogger()))
	return NewPipeline(retriever, synthesizer, WithPipelineLogger(testLogger()))
}

func TestPipelineAnswersFromIngestedContent(t *testing.T) {
	searcher := &stubSearcher{
		results: []ScoredPassage{
			{Passage: ingestion.Passage{SourceID: "relatorio", Ordinal: 3, Content: "O faturamento da empresa Alfa foi R$ 548.789.613,65."}, Distance: 0.04},
			{Passage: ingestion.Passage{SourceID: "relatorio", Ordinal: 7, Content: "A empresa Alfa atua no setor de energia."}, Distance: 0.21},
		},
	}
	pipeline := newTestPipeline(&groundedLLM{}, searcher)

	answer, err := pipeline.Answer(context.Background(), "Qual o faturamento da empresa Alfa?")
	require.NoError(t, err)
	assert.Contains(t, answer, "548.789.613,65")
}

func TestPipelineRefusesQuestionsOutsideTheDocument(t *testing.T) {
	// nearest-neighbor search always returns the top-k, relevant or not; the
	// refusal comes from the prompt contract, not from the retrieval step
	searcher := &stubSearcher{
		results: []ScoredPassage{
			{Passage: ingestion.Passage{SourceID: "relatorio", Ordinal: 0, Content: "A empresa Alfa atua no setor de energia."}, Distance: 0.63},
		},
	}
	pipeline := newTestPipeline(&groundedLLM{}, searcher)

	answer, err := pipeline.Answer(context.Background(), "Qual a capital do Brasil?")
	require.NoError(t, err)
	assert.Equal(t, RefusalAnswer, answer)
}

func TestPipelineRefusesOnEmptyStore(t *testing.T) {
	llm := &groundedLLM{}
	pipeline := newTestPipeline(llm, &stubSearcher{})

	answer, err := pipeline.Answer(context.Background(), "Qual o faturamento da empresa Alfa?")
	require.NoError(t, err)
	assert.Equal(t, RefusalAnswer, answer)
	assert.Equal(t, 1, llm.calls, "the model is still invoked with an empty context")
}

func TestPipelineRejectsEmptyQuestion(t *testing.T) {
	llm := &groundedLLM{}
	pipeline := newTestPipeline(llm, &stubSearcher{})

	for _, question := range []string{"", "   "} {
		_, err := pipeline.Answer(context.Background(), question)
		assert.True(t, errors.Is(err, rag.ErrInvalidQuery))
	}
	assert.Zero(t, llm.calls)
}

func TestPipelineGenerationFailureIsFatalForQuestionOnly(t *testing.T) {
	searcher := &stubSearcher{}
	failing := &stubLLM{err: rag.ErrGenerationService}
	pipeline := newTestPipeline(failing, searcher)

	_, err := pipeline.Answer(context.Background(), "primeira pergunta")
	assert.True(t, errors.Is(err, rag.ErrGenerationService))

	failing.err = nil
	failing.answer = RefusalAnswer
	answer, err := pipeline.Answer(context.Background(), "segunda pergunta")
	require.NoError(t, err)
	assert.Equal(t, RefusalAnswer, answer)
}
