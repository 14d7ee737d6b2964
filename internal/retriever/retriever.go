package retriever

import (
	"context"
	"errors"
	"fmt"

	"github.com/statementsearch/server/internal/logger"
)

// ErrInvalidTopK indicates a caller-supplied top_k outside the accepted range.
// Rejected before any encoding or index work.
var ErrInvalidTopK = errors.New("top_k out of range")

// NewClient creates a retrieval client with explicit collaborators.
// Construction fails fast if any collaborator is missing, rather than lazily
// discovering unavailability per-request.
func NewClient(encoder Encoder, index Index, store Store, config Config) (*Client, error) {
	if encoder == nil {
		return nil, fmt.Errorf("encoder is required")
	}

	if index == nil {
		return nil, fmt.Errorf("index is required")
	}

	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	if config.DefaultTopK < 1 || config.DefaultTopK > MaxTopK {
		return nil, fmt.Errorf("default top_k must be in [1, %d], got %d", MaxTopK, config.DefaultTopK)
	}

	if config.DistanceThreshold <= 0 {
		return nil, fmt.Errorf("distance threshold must be positive, got %f", config.DistanceThreshold)
	}

	return &Client{
		encoder: encoder,
		index:   index,
		store:   store,
		config:  config,
	}, nil
}

// DefaultTopK returns the result count used when the caller supplies none.
func (c *Client) DefaultTopK() int {
	return c.config.DefaultTopK
}

// Search returns the topK catalog records most similar to queryText, ordered
// by ascending distance. Results beyond the distance threshold are discarded.
// Ids present in the index but missing from the catalog are skipped silently:
// the two stores are maintained independently and a best-effort join is the
// deliberate policy, not an accident. An empty result is a valid, non-error
// outcome; encoder and index failures propagate as service-level errors.
func (c *Client) Search(ctx context.Context, queryText string, topK int) ([]SearchHit, error) {
	// cheap-reject before any encoding or index work
	if topK < 1 || topK > MaxTopK {
		return nil, fmt.Errorf("%w: must be in [1, %d], got %d", ErrInvalidTopK, MaxTopK, topK)
	}

	// an empty query is still a valid encodable input; the encoder defines
	// its behavior, the pipeline does not special-case it
	vector, err := c.encoder.Encode(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	neighbors, err := c.index.NearestNeighbors(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("nearest-neighbor search failed: %w", err)
	}

	// threshold filter, preserving the index's ascending-distance order.
	// The index may return entries beyond the cutoff; they must not reach
	// the caller.
	kept := neighbors[:0]

	for _, n := range neighbors {
		if n.Distance < c.config.DistanceThreshold {
			kept = append(kept, n)
		}
	}

	if len(kept) == 0 {
		return []SearchHit{}, nil
	}

	// metadata join: exactly one batched lookup regardless of result-set size
	ids := make([]string, len(kept))
	for i, n := range kept {
		ids[i] = n.StatementID
	}

	records, err := c.store.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statement records: %w", err)
	}

	// order-preserving assembly: iterate the post-filter, distance-ordered
	// sequence, not the lookup's unordered result
	hits := make([]SearchHit, 0, len(kept))

	for _, n := range kept {
		record, ok := records[n.StatementID]
		if !ok {
			// index/store inconsistency: drop the id, keep the request alive
			logger.Debug("statement in index but not in catalog, dropping",
				"statement_id", n.StatementID,
			)

			continue
		}

		hits = append(hits, SearchHit{
			StatementID: n.StatementID,
			Distance:    n.Distance,
			Record:      record,
		})
	}

	return hits, nil
}
