// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the question pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pdiddy/filmqa/internal/pipeline"
)

// Actions holds the HTTP handlers. Requests run the pipeline
// sequentially; the upstream rate limiters make concurrency pointless.
type Actions struct {
	pipeline *pipeline.Pipeline
	version  string
	log      zerolog.Logger
}

// NewActions builds the handler set.
func NewActions(p *pipeline.Pipeline, version string, log zerolog.Logger) *Actions {
	return &Actions{pipeline: p, version: version, log: log}
}

type answerRequest struct {
	ID       string `json:"id"`
	Question string `json:"question" binding:"required"`
}

// Answer handles POST /api/answer: runs the full pipeline on one question
// and returns the complete result record.
func (a *Actions) Answer(ctx *gin.Context) {
	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := a.pipeline.Process(ctx.Request.Context(), req.ID, req.Question)
	a.log.Info().
		Str("question", req.Question).
		Str("type", string(res.Type)).
		Bool("skipped", res.Skipped).
		Msg("answered API question")
	ctx.JSON(http.StatusOK, res)
}

// Health handles GET /api/health.
func (a *Actions) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "version": a.version})
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(a *Actions) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	api := engine.Group("/api")
	api.POST("/answer", a.Answer)
	api.GET("/health", a.Health)
	return engine
}
