package statements

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/statementsearch/server/internal/logger"
)

var ErrStatementNotFound = errors.New("statement not found")

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a single statement by its primary key.
// Returns ErrStatementNotFound if no row matches.
func (r *Repository) GetByID(ctx context.Context, id string) (*Statement, error) {
	var s Statement

	err := r.db.QueryRow(ctx, queryGetByID, id).Scan(
		&s.StatementID,
		&s.Title,
		&s.TechnologyBucket,
		&s.Department,
		&s.Organisation,
		&s.Description,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatementNotFound
		}

		return nil, fmt.Errorf("failed to get statement %s: %w", id, err)
	}

	return &s, nil
}

// GetByIDs fetches all statements whose id is in the given set, in a single
// round-trip. Ids with no matching row are omitted from the result; a missing
// id is not an error. No ordering guarantee - callers re-impose order.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) (map[string]Statement, error) {
	if len(ids) == 0 {
		return map[string]Statement{}, nil
	}

	rows, err := r.db.Query(ctx, queryGetByIDs, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements by ids: %w", err)
	}

	defer rows.Close()

	result := make(map[string]Statement, len(ids))

	for rows.Next() {
		var s Statement

		err := rows.Scan(
			&s.StatementID,
			&s.Title,
			&s.TechnologyBucket,
			&s.Department,
			&s.Organisation,
			&s.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}

		result[s.StatementID] = s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement rows: %w", err)
	}

	return result, nil
}

// ListAll returns the full catalog.
func (r *Repository) ListAll(ctx context.Context) ([]Statement, error) {
	rows, err := r.db.Query(ctx, queryListAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}

	defer rows.Close()

	var result []Statement

	for rows.Next() {
		var s Statement

		err := rows.Scan(
			&s.StatementID,
			&s.Title,
			&s.TechnologyBucket,
			&s.Department,
			&s.Organisation,
			&s.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}

		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement rows: %w", err)
	}

	return result, nil
}

// EnsureSchema creates the statements table if it does not exist.
// Used by the offline ingester; the server assumes the schema is in place.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, queryCreateTable); err != nil {
		return fmt.Errorf("failed to create statements table: %w", err)
	}

	return nil
}

// InsertBatch upserts multiple statements in a single transaction.
func (r *Repository) InsertBatch(ctx context.Context, stmts []Statement) error {
	if len(stmts) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for _, s := range stmts {
		batch.Queue(queryInsert,
			s.StatementID,
			s.Title,
			s.TechnologyBucket,
			s.Department,
			s.Organisation,
			s.Description,
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(stmts) {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to insert statement %d: %w", i, err)
		}
	}

	// must close batch results before committing, otherwise connection is still "busy"
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Count returns the total number of statements in the catalog.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int

	if err := r.db.QueryRow(ctx, queryCount).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count statements: %w", err)
	}

	return count, nil
}

// DeleteAll removes every statement from the catalog.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, queryDeleteAll); err != nil {
		return fmt.Errorf("failed to delete statements: %w", err)
	}

	return nil
}
