package search

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/statementsearch/server/internal/errors"
	"github.com/statementsearch/server/internal/retriever"
)

// SearchHandler runs a semantic search over the statement catalog.
// q is required (an empty value is still a valid query); top_k is optional
// and defaults to the pipeline's configured value.
func SearchHandler(searcher Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		query, ok := c.GetQuery("q")
		if !ok {
			apierrors.ValidationError(c, "query parameter q is required", nil)
			return
		}

		topK := searcher.DefaultTopK()

		if raw, hasTopK := c.GetQuery("top_k"); hasTopK {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apierrors.ValidationError(c, "top_k must be an integer", err)
				return
			}

			topK = parsed
		}

		hits, err := searcher.Search(c.Request.Context(), query, topK)
		if err != nil {
			if errors.Is(err, retriever.ErrInvalidTopK) {
				apierrors.ValidationError(c, "top_k must be between 1 and 150", err)
				return
			}

			apierrors.InternalError(c, "search failed", err)

			return
		}

		c.JSON(http.StatusOK, Response{
			Query:   query,
			Results: hits,
		})
	}
}
