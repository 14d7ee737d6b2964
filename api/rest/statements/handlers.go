package statements

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalog "github.com/statementsearch/server/catalog/statements"
	apierrors "github.com/statementsearch/server/internal/errors"
)

// GetStatementHandler fetches a single statement by id
func GetStatementHandler(repo Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		statement, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrStatementNotFound) {
				apierrors.NotFound(c, "statement")
				return
			}

			apierrors.InternalError(c, "failed to fetch statement", err)

			return
		}

		c.JSON(http.StatusOK, statement)
	}
}

// ListStatementsHandler exports the full catalog
func ListStatementsHandler(repo Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := repo.ListAll(c.Request.Context())
		if err != nil {
			apierrors.InternalError(c, "failed to list statements", err)
			return
		}

		if records == nil {
			records = []catalog.Statement{}
		}

		c.JSON(http.StatusOK, ListResponse{Records: records})
	}
}
