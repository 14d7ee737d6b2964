package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEmbedding struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

func embeddingsServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

func TestEncode(t *testing.T) {
	var gotAuth string
	var gotReq embeddingRequest

	server := embeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]any{
			"object": "list",
			"data": []apiEmbedding{
				{Object: "embedding", Index: 0, Embedding: []float32{0.1, 0.2, 0.3}},
			},
			"model": "text-embedding-3-small",
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck,gosec // test server
	})

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Dimension: 3})

	vector, err := client.Encode(context.Background(), "smart irrigation systems")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, []string{"smart irrigation systems"}, gotReq.Input)
	assert.Equal(t, "text-embedding-3-small", gotReq.Model)
}

func TestEncodeBatchReassemblesByIndex(t *testing.T) {
	server := embeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
		// return data out of order; the client must reassemble by index
		resp := map[string]any{
			"object": "list",
			"data": []apiEmbedding{
				{Object: "embedding", Index: 1, Embedding: []float32{1.0}},
				{Object: "embedding", Index: 0, Embedding: []float32{0.0}},
			},
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck,gosec // test server
	})

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Dimension: 1})

	embeddings, err := client.EncodeBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, embeddings, 2)
	assert.Equal(t, []float32{0.0}, embeddings[0])
	assert.Equal(t, []float32{1.0}, embeddings[1])
}

func TestEncodeModelUnavailable(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := embeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model is loading", http.StatusServiceUnavailable)
		})

		client := NewClient(Config{APIKey: "k", BaseURL: server.URL})

		_, err := client.Encode(context.Background(), "anything")
		require.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		server := embeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()

		client := NewClient(Config{APIKey: "k", BaseURL: server.URL})

		_, err := client.Encode(context.Background(), "anything")
		require.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("embedding count mismatch", func(t *testing.T) {
		server := embeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
			resp := map[string]any{"object": "list", "data": []apiEmbedding{}}
			json.NewEncoder(w).Encode(resp) //nolint:errcheck,gosec // test server
		})

		client := NewClient(Config{APIKey: "k", BaseURL: server.URL})

		_, err := client.Encode(context.Background(), "anything")
		require.ErrorIs(t, err, ErrModelUnavailable)
	})
}

func TestEncodeBatchRejectsEmptyInput(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})

	_, err := client.EncodeBatch(context.Background(), nil)
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})

	assert.Equal(t, defaultBaseURL, client.config.BaseURL)
	assert.Equal(t, defaultModel, client.config.Model)
	assert.Equal(t, defaultDimension, client.Dimension())
}
