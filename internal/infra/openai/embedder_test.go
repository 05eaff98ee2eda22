package openai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchEmbedRejectsEmptyInput(t *testing.T) {
	e := NewEmbedder("sk-test")

	_, err := e.BatchEmbed(context.Background(), nil)
	assert.Error(t, err)
}

func TestBatchEmbedRejectsOversizedBatch(t *testing.T) {
	e := NewEmbedder("sk-test")

	texts := make([]string, e.MaxBatchSize()+1)
	for i := range texts {
		texts[i] = "texto"
	}

	_, err := e.BatchEmbed(context.Background(), texts)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "exceeds maximum"))
}

func TestEmbedderOptions(t *testing.T) {
	e := NewEmbedder("sk-test",
		WithEmbeddingModel("text-embedding-3-large"),
		WithEmbeddingDimension(3072),
	)

	assert.Equal(t, "text-embedding-3-large", e.ModelName())
	assert.Equal(t, 3072, e.Dimension())
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "gpt-4o-mini", 0)
	assert.ErrorIs(t, err, ErrAPIKeyNotSet)
}

func TestNewClientDefaultsModel(t *testing.T) {
	c, err := NewClient("sk-test", "", 0)
	assert.NoError(t, err)
	assert.Equal(t, DefaultLLMModel, c.ModelName())
}
