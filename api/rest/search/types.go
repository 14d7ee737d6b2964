package search

import (
	"context"

	"github.com/statementsearch/server/internal/retriever"
)

// Searcher is the retrieval pipeline as seen by the HTTP layer.
type Searcher interface {
	Search(ctx context.Context, queryText string, topK int) ([]retriever.SearchHit, error)
	DefaultTopK() int
}

// Response wraps the ranked results for one search request.
type Response struct {
	Query   string                `json:"query"`
	Results []retriever.SearchHit `json:"results"`
}
