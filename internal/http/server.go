// Package http provides the consultd HTTP API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fyrsmithlabs/consultd/internal/consultant"
	"github.com/fyrsmithlabs/consultd/internal/vectorstore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ConsultService produces consultation recommendations.
type ConsultService interface {
	Suggest(ctx context.Context, req consultant.SuggestRequest) (*consultant.Recommendation, error)
}

// ImpactService produces standalone business-impact analyses.
type ImpactService interface {
	Analyze(ctx context.Context, req consultant.ImpactRequest) (*consultant.BusinessImpact, error)
}

// SearchStore is the slice of the vector store the API exposes.
type SearchStore interface {
	Search(ctx context.Context, query string, k int) ([]vectorstore.SearchResult, error)
	ListCollections(ctx context.Context) ([]string, error)
	GetCollectionInfo(ctx context.Context, collectionName string) (*vectorstore.CollectionInfo, error)
}

// Server provides HTTP endpoints for consultd.
type Server struct {
	echo       *echo.Echo
	consultant ConsultService
	analyzer   ImpactService
	store      SearchStore
	logger     *zap.Logger
	config     *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server. Components may be nil; their
// endpoints answer 503 until they are wired.
func NewServer(svc ConsultService, analyzer ImpactService, store SearchStore, logger *zap.Logger, cfg *Config) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8000,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})
	e.Use(NewHTTPMetrics(logger).MetricsMiddleware())

	s := &Server{
		echo:       e,
		consultant: svc,
		analyzer:   analyzer,
		store:      store,
		logger:     logger,
		config:     cfg,
	}

	// Register routes
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	// Health check and Prometheus metrics
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API v1 routes
	v1 := s.echo.Group("/api/v1")
	v1.POST("/consult", s.handleConsult)
	v1.POST("/impact", s.handleImpact)
	v1.POST("/search", s.handleSearch)
	v1.GET("/stats", s.handleStats)
}

// handleHealth reports overall status plus per-component availability.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Components: map[string]bool{
			"consultant":      s.consultant != nil,
			"impact_analyzer": s.analyzer != nil,
			"vector_store":    s.store != nil,
		},
	})
}

// Handler returns the router as an http.Handler, for mounting in tests
// or behind another server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
