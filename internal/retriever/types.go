package retriever

import (
	"context"

	"github.com/statementsearch/server/catalog/statements"
	"github.com/statementsearch/server/internal/vectorindex"
)

// Encoder maps a query string to a fixed-dimensionality numeric vector.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
}

// Index returns up to k (id, distance) pairs ordered by ascending distance.
type Index interface {
	NearestNeighbors(ctx context.Context, vector []float32, k int) ([]vectorindex.Neighbor, error)
}

// Store supports batched catalog lookup by statement id. Missing ids are
// omitted from the result, never an error.
type Store interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]statements.Statement, error)
}

// Client orchestrates encode -> nearest-neighbor search -> threshold filter ->
// metadata join -> order-preserving assembly. It is stateless across requests
// and safe for concurrent use; the collaborators are read-only handles
// initialized once at process start.
type Client struct {
	encoder Encoder
	index   Index
	store   Store
	config  Config
}

// SearchHit is one ranked result: a statement id, its distance to the query
// (lower is more similar), and the joined catalog record.
type SearchHit struct {
	StatementID string               `json:"statement_id"`
	Distance    float32              `json:"distance"`
	Record      statements.Statement `json:"record"`
}
