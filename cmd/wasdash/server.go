package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wasdash/internal/middleware"
	"wasdash/internal/models"
	"wasdash/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server exposes the analysis pipeline over HTTP.
type Server struct {
	router   *mux.Router
	server   *http.Server
	analysis *service.AnalysisService
	cfg      *models.Config
	logger   *logrus.Logger
}

func NewServer(cfg *models.Config, analysis *service.AnalysisService, logger *logrus.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		analysis: analysis,
		cfg:      cfg,
		logger:   logger,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Observability(s.logger))

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/parse", s.handleParse).Methods(http.MethodPost)
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/export/csv", s.handleExportCSV).Methods(http.MethodPost)

	// Register the watch route before the {id} routes so "watch" is not
	// captured as an ID.
	api.HandleFunc("/analyses/watch", s.handleWatch).Methods(http.MethodGet)
	api.HandleFunc("/analyses", s.handleListAnalyses).Methods(http.MethodGet)
	api.HandleFunc("/analyses", s.handleDeleteAllAnalyses).Methods(http.MethodDelete)
	api.HandleFunc("/analyses/{id:[0-9]+}", s.handleGetAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/analyses/{id:[0-9]+}", s.handleDeleteAnalysis).Methods(http.MethodDelete)
	api.HandleFunc("/analyses/{id:[0-9]+}/export", s.handleExportAnalysis).Methods(http.MethodGet)
}

// Start begins listening; it returns nil on graceful shutdown.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.server.Addr).Info("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
