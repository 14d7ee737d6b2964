package embedder

import "net/http"

type Config struct {
	APIKey    string
	BaseURL   string // e.g. "https://api.openai.com/v1", or a local inference server
	Model     string // e.g. "text-embedding-3-small"
	Dimension int    // fixed output dimensionality of the model
}

// Client wraps a pretrained text-embedding model served behind an
// OpenAI-compatible embeddings endpoint. From the pipeline's perspective it is
// a pure text -> fixed-length vector function.
type Client struct {
	config     Config
	httpClient *http.Client
}

type embeddingRequest struct {
	Input    []string `json:"input"`
	Model    string   `json:"model"`
	Encoding string   `json:"encoding_format"`
}

type embeddingResponse struct {
	Object string `json:"object"`
	Data   []struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}
