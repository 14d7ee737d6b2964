package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/statementsearch/server/catalog/statements"
	"github.com/statementsearch/server/internal/config"
	"github.com/statementsearch/server/internal/logger"
)

// column headers expected in the catalog CSV
var csvColumns = []string{
	"statement_id",
	"title",
	"technology_bucket",
	"department",
	"organisation",
	"description",
}

// LoadCatalog bulk-loads the statement catalog from a CSV file into Postgres.
func LoadCatalog(cfg *config.Config, db *pgxpool.Pool, flags config.IngestFlags) error {
	ctx := context.Background()
	logger.Info("starting catalog load", "path", flags.Path, "clear", flags.Clear)

	repo := statements.NewRepository(db)

	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	if flags.Clear {
		logger.Info("clearing existing statements")

		if err := repo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear existing statements: %w", err)
		}
	}

	file, err := os.Open(flags.Path)
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}

	defer file.Close() //nolint:errcheck,gosec // read-only file

	stmts, err := parseCatalogCSV(file)
	if err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if len(stmts) == 0 {
		return fmt.Errorf("no statements found in %s", flags.Path)
	}

	if err := repo.InsertBatch(ctx, stmts); err != nil {
		return fmt.Errorf("failed to insert statements: %w", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count statements: %w", err)
	}

	logger.Info("catalog loaded", "inserted", len(stmts), "total", count)

	return nil
}

// parses the catalog CSV. The header row names the columns; order does not
// matter, unknown columns are ignored, statement_id is required per row.
func parseCatalogCSV(r io.Reader) ([]statements.Statement, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))

	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	if _, ok := columns["statement_id"]; !ok {
		return nil, fmt.Errorf("catalog file is missing the statement_id column")
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[idx])
	}

	var stmts []statements.Statement
	line := 1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		line++

		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		id := field(row, "statement_id")
		if id == "" {
			logger.Warn("skipping row without statement_id", "line", line)
			continue
		}

		stmts = append(stmts, statements.Statement{
			StatementID:      id,
			Title:            field(row, "title"),
			TechnologyBucket: field(row, "technology_bucket"),
			Department:       field(row, "department"),
			Organisation:     field(row, "organisation"),
			Description:      field(row, "description"),
		})
	}

	return stmts, nil
}
