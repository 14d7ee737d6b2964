package statements

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, repo Catalog) {
	router.GET("/statements", ListStatementsHandler(repo))
	router.GET("/statements/:id", GetStatementHandler(repo))
}
