package statements

import (
	"context"

	catalog "github.com/statementsearch/server/catalog/statements"
)

// Catalog is the metadata store as seen by the HTTP layer.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*catalog.Statement, error)
	ListAll(ctx context.Context) ([]catalog.Statement, error)
}

// ListResponse wraps the full catalog export.
type ListResponse struct {
	Records []catalog.Statement `json:"records"`
}
