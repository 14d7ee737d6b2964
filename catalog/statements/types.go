package statements

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

// Statement is one problem statement in the searchable catalog.
// StatementID is the immutable primary key; every other field is free text
// and may be empty.
type Statement struct {
	StatementID      string `json:"statement_id"`
	Title            string `json:"title,omitempty"`
	TechnologyBucket string `json:"technology_bucket,omitempty"`
	Department       string `json:"department,omitempty"`
	Organisation     string `json:"organisation,omitempty"`
	Description      string `json:"description,omitempty"`
}

// EmbeddingText composes the document text that gets embedded for this
// statement. The search index and the query encoder must agree on this
// composition, so it lives here rather than in the ingester.
func (s Statement) EmbeddingText() string {
	return fmt.Sprintf(
		"Title: %s.\nTechnology_Bucket: %s.\nDepartment: %s.\nOrganisation: %s.\nDescription: %s",
		s.Title, s.TechnologyBucket, s.Department, s.Organisation, s.Description,
	)
}
