package config

type Config struct {
	DatabaseURL         string
	QdrantAddr          string
	QdrantCollection    string
	EmbeddingsAPIKey    string
	EmbeddingsBaseURL   string
	EmbeddingsModel     string
	EmbeddingsDimension int
	Environment         string
}

type IngestFlags struct {
	Path  string
	Clear bool
}
