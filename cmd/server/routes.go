package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/statementsearch/server/api/rest/health"
	"github.com/statementsearch/server/api/rest/search"
	"github.com/statementsearch/server/api/rest/statements"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// per-client rate limit for the API group
const apiRateLimit = "120-M"

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	// the catalog is public read-only data; allow any origin
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
	}))

	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")
	v1.Use(rateLimitMiddleware())

	{
		v1.GET("/ping", health.PingHandler)

		search.RegisterRoutes(v1, server.retriever)
		statements.RegisterRoutes(v1, server.statementRepo)
	}
}

func rateLimitMiddleware() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(apiRateLimit)
	if err != nil {
		// the format is a compile-time constant; this cannot fail at runtime
		panic(err)
	}

	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}
