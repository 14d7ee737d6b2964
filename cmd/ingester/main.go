package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/statementsearch/server/internal/config"
	"github.com/statementsearch/server/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  load   - bulk-load the statement catalog from a CSV file into Postgres")
		fmt.Println("  embed  - compute embeddings for the catalog and upsert them into Qdrant")
		fmt.Println("  all    - load then embed")
		fmt.Println("\nOptions:")
		fmt.Println("  --path <path>  - custom path to the catalog CSV (load)")
		fmt.Println("  --clear        - clear existing data before ingesting")
		os.Exit(1)
	}

	command := os.Args[1]

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// connect to database
	ctx := context.Background()

	db, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("connected to database")

	// route to appropriate command
	switch command {
	case "load":
		flags := config.ParseLoadFlags()
		if err := LoadCatalog(cfg, db, flags); err != nil {
			logger.Fatal("failed to load catalog", "error", err)
		}

	case "embed":
		flags := config.ParseEmbedFlags()
		if err := EmbedCatalog(cfg, db, flags); err != nil {
			logger.Fatal("failed to embed catalog", "error", err)
		}

	case "all":
		loadFlags := config.DefaultLoadFlags()
		embedFlags := config.DefaultEmbedFlags()

		for _, arg := range os.Args[2:] {
			if arg == "--clear" {
				loadFlags.Clear = true
				embedFlags.Clear = true
			}
		}

		logger.Info("ingesting catalog (load, embed)")

		if err := LoadCatalog(cfg, db, loadFlags); err != nil {
			logger.Fatal("failed to load catalog", "error", err)
		}

		if err := EmbedCatalog(cfg, db, embedFlags); err != nil {
			logger.Fatal("failed to embed catalog", "error", err)
		}

	default:
		logger.Fatal("unknown command", "command", command)
	}

	logger.Info("ingestion complete")
}
