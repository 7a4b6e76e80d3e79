package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/quote-optimizer/internal/api/handlers"
	"github.com/eshaffer321/quote-optimizer/internal/api/middleware"
	"github.com/eshaffer321/quote-optimizer/internal/application/service"
	"github.com/eshaffer321/quote-optimizer/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config      Config
	router      *gin.Engine
	httpServer  *http.Server
	logger      *slog.Logger
	repo        storage.Repository
	comparisons *service.ComparisonService
}

// NewServer creates a new API server.
// If comparisons is nil, a service with the default total tolerance is used.
func NewServer(cfg Config, repo storage.Repository, comparisons *service.ComparisonService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if comparisons == nil {
		comparisons = service.NewComparisonService(repo, 0, logger)
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config:      cfg,
		router:      gin.New(),
		logger:      logger,
		repo:        repo,
		comparisons: comparisons,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())

	// CORS
	corsConfig := middleware.DefaultCORSConfig()
	if len(s.config.AllowedOrigins) > 0 {
		corsConfig.AllowedOrigins = s.config.AllowedOrigins
	}
	s.router.Use(middleware.CORS(corsConfig))

	// Request logging
	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.GET("/health", healthHandler.Get)

	api := s.router.Group("/api")
	{
		// Quotes
		quotesHandler := handlers.NewQuotesHandler(s.repo)
		api.POST("/quotes", quotesHandler.Create)
		api.GET("/quotes", quotesHandler.List)
		api.GET("/quotes/:id", quotesHandler.Get)

		// Proposals
		proposalsHandler := handlers.NewProposalsHandler(s.repo, s.comparisons)
		api.PUT("/quotes/:id/proposals", proposalsHandler.Submit)
		api.GET("/quotes/:id/proposals", proposalsHandler.List)
		api.DELETE("/quotes/:id/proposals/:supplierId", proposalsHandler.Delete)

		// Comparisons
		comparisonsHandler := handlers.NewComparisonsHandler(s.repo, s.comparisons)
		api.POST("/quotes/:id/comparisons", comparisonsHandler.Create)
		api.GET("/quotes/:id/comparisons", comparisonsHandler.List)
		api.GET("/quotes/:id/comparisons/latest", comparisonsHandler.Latest)
		api.GET("/quotes/:id/comparisons/latest/export", comparisonsHandler.Export)

		// Stateless calculator
		calculatorHandler := handlers.NewCalculatorHandler(s.comparisons)
		api.POST("/best-combination", calculatorHandler.BestCombination)
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin engine for testing.
func (s *Server) Router() http.Handler {
	return s.router
}
