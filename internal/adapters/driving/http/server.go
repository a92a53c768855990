package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	qaService       driving.QAService
	indexingService driving.IndexingService
	docService      driving.DocumentService
	settingsService driving.SettingsService

	// Infrastructure
	taskQueue   driven.TaskQueue
	db          Pinger // PostgreSQL health check (optional)
	cacheClient Pinger // Cache backend health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	qaService driving.QAService,
	indexingService driving.IndexingService,
	docService driving.DocumentService,
	settingsService driving.SettingsService,
	taskQueue driven.TaskQueue,
	db Pinger, // can be nil
	cacheClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:          http.NewServeMux(),
		version:         cfg.Version,
		qaService:       qaService,
		indexingService: indexingService,
		docService:      docService,
		settingsService: settingsService,
		taskQueue:       taskQueue,
		db:              db,
		cacheClient:     cacheClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Document endpoints
	s.router.HandleFunc("POST /api/v1/documents", s.handleIngestDocument)
	s.router.HandleFunc("GET /api/v1/documents", s.handleListDocuments)
	s.router.HandleFunc("GET /api/v1/documents/{id}", s.handleGetDocument)
	s.router.HandleFunc("GET /api/v1/documents/{id}/chunks", s.handleGetDocumentChunks)
	s.router.HandleFunc("DELETE /api/v1/documents/{id}", s.handleDeleteDocument)
	s.router.HandleFunc("POST /api/v1/documents/{id}/reindex", s.handleReindexDocument)

	// Question answering
	s.router.HandleFunc("POST /api/v1/documents/{id}/ask", s.handleAsk)
	s.router.HandleFunc("GET /api/v1/documents/{id}/redflags", s.handleRedFlags)

	// Task status
	s.router.HandleFunc("GET /api/v1/tasks/{id}", s.handleGetTask)

	// Retrieval settings endpoints
	s.router.HandleFunc("GET /api/v1/settings/retrieval", s.handleGetRetrievalSettings)
	s.router.HandleFunc("PUT /api/v1/settings/retrieval", s.handleUpdateRetrievalSettings)

	// AI settings endpoints
	s.router.HandleFunc("GET /api/v1/settings/ai", s.handleGetAISettings)
	s.router.HandleFunc("PUT /api/v1/settings/ai", s.handleUpdateAISettings)
	s.router.HandleFunc("GET /api/v1/settings/ai/status", s.handleGetAIStatus)
	s.router.HandleFunc("POST /api/v1/settings/ai/test", s.handleTestAIConnection)

	// Stats
	s.router.HandleFunc("GET /api/v1/stats", s.handleGetStats)
}

// Handler returns the server's handler chain, for tests and embedding
func (s *Server) Handler() http.Handler {
	recovery := NewRecoveryMiddleware()
	logging := NewLoggingMiddleware()
	return recovery.Handler(logging.Handler(s.router))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	s.httpServer.Handler = s.Handler()

	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
