// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/sheetforge/sheetforge/internal/export"
	"github.com/sheetforge/sheetforge/internal/llm"
	"github.com/sheetforge/sheetforge/internal/pdf"
	"github.com/sheetforge/sheetforge/internal/repository"
)

// Server wires the pipeline components behind the HTTP routes.
type Server struct {
	router    *gin.Engine
	pdf       pdf.TextExtractor
	extractor llm.StatementExtractor
	records   repository.ExtractionRecordRepository
	exporter  *export.Service
	logger    *slog.Logger
}

func New(
	textExtractor pdf.TextExtractor,
	extractor llm.StatementExtractor,
	records repository.ExtractionRecordRepository,
	exporter *export.Service,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		pdf:       textExtractor,
		extractor: extractor,
		records:   records,
		exporter:  exporter,
		logger:    logger,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestMetrics())

	r.GET("/", s.handleRoot)
	r.GET("/healthz", s.handleHealthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/process", s.handleProcess)
	r.GET("/extractions", s.handleListExtractions)
	r.GET("/extractions/:id", s.handleGetExtraction)
	r.POST("/export", s.handleExport)

	s.router = r
	return s
}

// Handler returns the root handler with permissive CORS, matching the
// browser-frontend deployment the API serves.
func (s *Server) Handler() http.Handler {
	return cors.AllowAll().Handler(s.router)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to SheetForge API"})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
