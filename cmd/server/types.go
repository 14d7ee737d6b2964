package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/statementsearch/server/catalog/statements"
	"github.com/statementsearch/server/internal/config"
	"github.com/statementsearch/server/internal/embedder"
	"github.com/statementsearch/server/internal/retriever"
	"github.com/statementsearch/server/internal/vectorindex"
)

// holds all dependencies and state for the API server
type Server struct {
	db            *pgxpool.Pool
	config        *config.Config
	statementRepo *statements.Repository
	encoder       *embedder.Client
	index         *vectorindex.Index
	retriever     *retriever.Client
	router        *gin.Engine
}
