package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the full application configuration: a small explicit structure
// of named values, read once from the environment and passed into the
// pipelines.
type Config struct {
	Database DatabaseConfig
	OpenAI   OpenAIConfig
	Ingest   IngestConfig
	Search   SearchConfig

	// Collection is the pgvector table holding the embedding records.
	Collection string
}

// DatabaseConfig is the PostgreSQL connection configuration. URL wins when
// set; otherwise the discrete fields are composed into a connection string.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ConnString returns the pgx connection string.
func (c DatabaseConfig) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// OpenAIConfig configures the embedding and generative model services.
type OpenAIConfig struct {
	APIKey             string
	EmbeddingModel     string
	EmbeddingDimension int
	LLMModel           string
	Temperature        float64
}

// IngestConfig configures the segmentation policy.
type IngestConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

// SearchConfig configures retrieval and context assembly.
type SearchConfig struct {
	K int
	// MaxContextTokens caps the retrieved context handed to the model;
	// 0 means unlimited.
	MaxContextTokens int
}

// Load reads configuration from the environment, loading envFilePath first
// when it exists. A missing env file is not an error; the process can run on
// environment variables alone.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load env file: %w", err)
			}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "docchat"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "docchat"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OpenAI: OpenAIConfig{
			APIKey:             getEnv("OPENAI_API_KEY", ""),
			EmbeddingModel:     getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingDimension: getEnvAsInt("OPENAI_EMBEDDING_DIMENSION", 1536),
			LLMModel:           getEnv("OPENAI_LLM_MODEL", "gpt-4o-mini"),
			Temperature:        getEnvAsFloat("TEMPERATURE", 0.0),
		},
		Ingest: IngestConfig{
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 150),
		},
		Search: SearchConfig{
			K:                getEnvAsInt("SEARCH_K", 10),
			MaxContextTokens: getEnvAsInt("MAX_CONTEXT_TOKENS", 0),
		},
		Collection: getEnv("PG_VECTOR_COLLECTION_NAME", "passages"),
	}

	return cfg, nil
}

// Validate checks the settings the pipelines cannot run without.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not configured")
	}
	if c.Ingest.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.Ingest.ChunkSize)
	}
	if c.Ingest.ChunkOverlap < 0 || c.Ingest.ChunkOverlap >= c.Ingest.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.Ingest.ChunkOverlap)
	}
	if c.Search.K <= 0 {
		return fmt.Errorf("SEARCH_K must be positive, got %d", c.Search.K)
	}
	return nil
}

// getEnv returns the environment variable or the default when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as an integer.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat reads an environment variable as a float.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
