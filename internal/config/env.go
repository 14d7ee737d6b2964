package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultQdrantCollection    = "statements"
	defaultEmbeddingsBaseURL   = "https://api.openai.com/v1"
	defaultEmbeddingsModel     = "text-embedding-3-small"
	defaultEmbeddingsDimension = 1536
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	qdrantAddr := os.Getenv("QDRANT_ADDR")
	embeddingsKey := os.Getenv("EMBEDDINGS_API_KEY")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if qdrantAddr == "" {
		return nil, fmt.Errorf("QDRANT_ADDR environment variable is required")
	}

	if embeddingsKey == "" {
		return nil, fmt.Errorf("EMBEDDINGS_API_KEY environment variable is required")
	}

	collection := os.Getenv("QDRANT_COLLECTION")
	if collection == "" {
		collection = defaultQdrantCollection
	}

	baseURL := os.Getenv("EMBEDDINGS_BASE_URL")
	if baseURL == "" {
		baseURL = defaultEmbeddingsBaseURL
	}

	model := os.Getenv("EMBEDDINGS_MODEL")
	if model == "" {
		model = defaultEmbeddingsModel
	}

	dimension := defaultEmbeddingsDimension

	if dimStr := os.Getenv("EMBEDDINGS_DIMENSION"); dimStr != "" {
		dim, err := strconv.Atoi(dimStr)
		if err != nil || dim <= 0 {
			return nil, fmt.Errorf("EMBEDDINGS_DIMENSION must be a positive integer, got %q", dimStr)
		}

		dimension = dim
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	return &Config{
		DatabaseURL:         databaseURL,
		QdrantAddr:          qdrantAddr,
		QdrantCollection:    collection,
		EmbeddingsAPIKey:    embeddingsKey,
		EmbeddingsBaseURL:   baseURL,
		EmbeddingsModel:     model,
		EmbeddingsDimension: dimension,
		Environment:         environment,
	}, nil
}
