package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Ingest.ChunkSize)
	assert.Equal(t, 150, cfg.Ingest.ChunkOverlap)
	assert.Equal(t, 10, cfg.Search.K)
	assert.Equal(t, 0, cfg.Search.MaxContextTokens)
	assert.Equal(t, 0.0, cfg.OpenAI.Temperature)
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAI.EmbeddingModel)
	assert.Equal(t, 1536, cfg.OpenAI.EmbeddingDimension)
	assert.Equal(t, "passages", cfg.Collection)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("CHUNK_OVERLAP", "50")
	t.Setenv("SEARCH_K", "5")
	t.Setenv("PG_VECTOR_COLLECTION_NAME", "pdf_documents")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/rag")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Ingest.ChunkSize)
	assert.Equal(t, 50, cfg.Ingest.ChunkOverlap)
	assert.Equal(t, 5, cfg.Search.K)
	assert.Equal(t, "pdf_documents", cfg.Collection)
	assert.Equal(t, "postgres://u:p@db:5432/rag", cfg.Database.ConnString())
}

func TestLoadIgnoresUnparseableNumbers(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "mil")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Ingest.ChunkSize)
}

func TestConnStringFromParts(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "docchat",
		Password: "secret", DBName: "docchat", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=docchat password=secret dbname=docchat sslmode=disable",
		cfg.ConnString(),
	)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			OpenAI: OpenAIConfig{APIKey: "sk-test"},
			Ingest: IngestConfig{ChunkSize: 1000, ChunkOverlap: 150},
			Search: SearchConfig{K: 10},
		}
	}

	assert.NoError(t, base().Validate())

	missingKey := base()
	missingKey.OpenAI.APIKey = ""
	assert.Error(t, missingKey.Validate())

	badOverlap := base()
	badOverlap.Ingest.ChunkOverlap = 1000
	assert.Error(t, badOverlap.Validate())

	badK := base()
	badK.Search.K = 0
	assert.Error(t, badK.Validate())
}
