package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/statementsearch/server/catalog/statements"
	"github.com/statementsearch/server/internal/config"
	"github.com/statementsearch/server/internal/embedder"
	"github.com/statementsearch/server/internal/logger"
	"github.com/statementsearch/server/internal/vectorindex"
)

// how many statements get embedded per API call
const embedBatchSize = 64

// EmbedCatalog computes embeddings for every statement in the catalog and
// upserts them into the vector index.
func EmbedCatalog(cfg *config.Config, db *pgxpool.Pool, flags config.IngestFlags) error {
	ctx := context.Background()
	logger.Info("starting catalog embedding", "clear", flags.Clear)

	repo := statements.NewRepository(db)

	stmts, err := repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list statements: %w", err)
	}

	if len(stmts) == 0 {
		return fmt.Errorf("catalog is empty, run the load command first")
	}

	encoder := embedder.NewClient(embedder.Config{
		APIKey:    cfg.EmbeddingsAPIKey,
		BaseURL:   cfg.EmbeddingsBaseURL,
		Model:     cfg.EmbeddingsModel,
		Dimension: cfg.EmbeddingsDimension,
	})

	index, err := vectorindex.New(cfg.QdrantAddr, cfg.QdrantCollection, encoder.Dimension())
	if err != nil {
		return fmt.Errorf("failed to create vector index client: %w", err)
	}

	defer index.Close() //nolint:errcheck,gosec // best-effort cleanup

	if flags.Clear {
		logger.Info("recreating vector collection", "collection", cfg.QdrantCollection)

		if err := index.DeleteCollection(ctx); err != nil {
			// a missing collection is fine on a fresh index
			logger.Warn("failed to delete collection", "error", err)
		}
	}

	if err := index.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}

	logger.Info("embedding statements", "count", len(stmts), "batch_size", embedBatchSize)

	for start := 0; start < len(stmts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(stmts))
		batch := stmts[start:end]

		texts := make([]string, len(batch))
		for i, s := range batch {
			texts[i] = s.EmbeddingText()
		}

		embeddings, err := encoder.EncodeBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch starting at %d: %w", start, err)
		}

		entries := make([]vectorindex.Entry, len(batch))
		for i, s := range batch {
			entries[i] = vectorindex.Entry{
				StatementID: s.StatementID,
				Embedding:   embeddings[i],
			}
		}

		if err := index.Upsert(ctx, entries); err != nil {
			return fmt.Errorf("failed to upsert batch starting at %d: %w", start, err)
		}

		logger.Info("embedded batch", "from", start, "to", end)
	}

	logger.Info("catalog embedded", "statements", len(stmts))

	return nil
}
