package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/statementsearch/server/catalog/statements"
	"github.com/statementsearch/server/internal/config"
	"github.com/statementsearch/server/internal/embedder"
	"github.com/statementsearch/server/internal/logger"
	"github.com/statementsearch/server/internal/retriever"
	"github.com/statementsearch/server/internal/vectorindex"
)

// creates and configures a new server instance with all dependencies.
// Every collaborator is initialized here, once, and construction fails fast
// if any of them is unavailable - no lazy per-request discovery.
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// the catalog is read-only at serve time; a small pool is plenty
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	statementRepo := statements.NewRepository(db)

	encoder := embedder.NewClient(embedder.Config{
		APIKey:    cfg.EmbeddingsAPIKey,
		BaseURL:   cfg.EmbeddingsBaseURL,
		Model:     cfg.EmbeddingsModel,
		Dimension: cfg.EmbeddingsDimension,
	})

	index, err := vectorindex.New(cfg.QdrantAddr, cfg.QdrantCollection, encoder.Dimension())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create vector index client: %w", err)
	}

	if err := index.Ping(ctx); err != nil {
		index.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()

		return nil, fmt.Errorf("vector index not ready: %w", err)
	}

	retrievalConfig, err := retriever.LoadConfig()
	if err != nil {
		index.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()

		return nil, fmt.Errorf("failed to load retrieval config: %w", err)
	}

	retrievalClient, err := retriever.NewClient(encoder, index, statementRepo, retrievalConfig)
	if err != nil {
		index.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()

		return nil, fmt.Errorf("failed to create retrieval client: %w", err)
	}

	logger.Info("retrieval pipeline ready",
		"default_top_k", retrievalConfig.DefaultTopK,
		"distance_threshold", retrievalConfig.DistanceThreshold,
		"embedding_dimension", encoder.Dimension(),
		"collection", cfg.QdrantCollection,
	)

	router := gin.Default()

	server := &Server{
		db:            db,
		config:        cfg,
		statementRepo: statementRepo,
		encoder:       encoder,
		index:         index,
		retriever:     retrievalClient,
		router:        router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
