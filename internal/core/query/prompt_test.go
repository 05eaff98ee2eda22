package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat/docchat/internal/core/ingestion"
)

func scored(content string, distance float64) ScoredPassage {
	return ScoredPassage{
		Passage:  ingestion.Passage{SourceID: "doc", Content: content},
		Distance: distance,
	}
}

func TestBuildPromptContainsRefusalContract(t *testing.T) {
	prompt := BuildPrompt("Qual o faturamento?", []ScoredPassage{scored("trecho", 0.1)})

	assert.Contains(t, prompt, RefusalAnswer)
	assert.Contains(t, prompt, "EXCLUSIVAMENTE")
	assert.Contains(t, prompt, "CONTEXTO:")
	assert.Contains(t, prompt, "Qual o faturamento?")
}

func TestBuildPromptKeepsPassagesInRetrievalOrder(t *testing.T) {
	passages := []ScoredPassage{
		scored("primeiro trecho mais relevante", 0.05),
		scored("segundo trecho", 0.20),
		scored("terceiro trecho", 0.35),
	}

	prompt := BuildPrompt("pergunta", passages)

	first := strings.Index(prompt, "primeiro trecho mais relevante")
	second := strings.Index(prompt, "segundo trecho")
	third := strings.Index(prompt, "terceiro trecho")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestBuildPromptOmitsScores(t *testing.T) {
	prompt := BuildPrompt("pergunta", []ScoredPassage{scored("trecho", 0.1234)})

	assert.NotContains(t, prompt, "0.12")
	assert.NotContains(t, prompt, "Score")
	assert.NotContains(t, prompt, "score")
}

func TestBuildPromptEmptyContextStillForcesRefusal(t *testing.T) {
	prompt := BuildPrompt("Qual a capital do Brasil?", nil)

	// same structure, empty context block, refusal instruction intact
	assert.Contains(t, prompt, "CONTEXTO:")
	assert.Contains(t, prompt, RefusalAnswer)
	assert.Contains(t, prompt, "Qual a capital do Brasil?")
}

func TestBuildPromptQuestionComesAfterContext(t *testing.T) {
	prompt := BuildPrompt("a pergunta final", []ScoredPassage{scored("o contexto", 0.1)})

	assert.Less(t, strings.Index(prompt, "o contexto"), strings.Index(prompt, "a pergunta final"))
}
