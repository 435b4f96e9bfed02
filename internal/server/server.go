// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"locinsight/internal/config"
	"locinsight/internal/formatter"
	"locinsight/internal/ingest"
	"locinsight/internal/logger"
)

// Server holds the HTTP dependencies.
type Server struct {
	engine    *gin.Engine
	processor *ingest.Processor
	logger    *logger.Logger
	cfg       config.ServerConfig
	pretty    bool
}

// New creates a server with its routes registered.
func New(cfg *config.Config, processor *ingest.Processor, log *logger.Logger) *Server {
	gin.SetMode(cfg.Server.GinMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))

	s := &Server{
		engine:    engine,
		processor: processor,
		logger:    log,
		cfg:       cfg.Server,
		pretty:    cfg.Analyzer.Output.PrettyPrint,
	}

	s.registerRoutes()

	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server on the configured address.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting server", "addr", s.cfg.Addr)

	return srv.ListenAndServe()
}

func (s *Server) registerRoutes() {
	s.engine.GET("/ping", s.handlePing)

	api := s.engine.Group("/api")
	api.POST("/analyze", s.handleAnalyze)
}

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// handleAnalyze takes {"locations": "...", "metadata": "..."} where both values
// are the raw input texts.
func (s *Server) handleAnalyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.GetMaxBodyBytes())

	var req ingest.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": gin.H{"message": "request body too large"}})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "request body must be a JSON object with locations and metadata strings"}})

		return
	}

	report, err := s.processor.Process(req)
	if err != nil {
		var failure *ingest.ValidationFailure
		if errors.As(err, &failure) {
			c.JSON(http.StatusBadRequest, gin.H{"error": failure})
			return
		}

		s.logger.Error("analysis failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "An unexpected error occurred"}})

		return
	}

	if c.Query("format") == config.FormatMarkdown {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(formatter.RenderMarkdown(report)))
		return
	}

	if s.pretty {
		c.IndentedJSON(http.StatusOK, report)
		return
	}

	c.JSON(http.StatusOK, report)
}
