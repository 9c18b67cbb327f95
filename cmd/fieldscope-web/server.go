package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fieldscope/fieldscope-go/cmd/fieldscope-web/api"
	"github.com/fieldscope/fieldscope-go/pkg/audit"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port      int
	DBPath    string
	AuditPath string
	Version   string
}

// Server is the HTTP server for the fieldscope validation service.
type Server struct {
	config    ServerConfig
	mux       *http.ServeMux
	server    *http.Server
	store     *api.Store
	auditLog  *audit.FileLogger
	checksAPI *api.ChecksAPI
}

// NewServer creates a new server with the given configuration.
func NewServer(cfg ServerConfig) (*Server, error) {
	store, err := api.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	var logger audit.Logger = audit.NoopLogger{}
	var auditLog *audit.FileLogger
	if cfg.AuditPath != "" {
		auditLog, err = audit.NewFileLogger(cfg.AuditPath)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
		logger = auditLog
	}

	s := &Server{
		config:    cfg,
		mux:       http.NewServeMux(),
		store:     store,
		auditLog:  auditLog,
		checksAPI: api.NewChecksAPI(store, logger),
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.mux,
	}

	return s, nil
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/info", s.handleInfo)

	s.mux.HandleFunc("/api/v1/checks", s.checksAPI.HandleChecks)
	s.mux.HandleFunc("/api/v1/checks/", s.checksAPI.HandleCheckByID)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	version := s.config.Version
	if version == "" {
		version = "dev"
	}

	resp := map[string]string{
		"status":  "ok",
		"version": version,
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleInfo returns server information.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checkCount, _ := s.store.CountChecks()

	resp := map[string]int{
		"check_count": checkCount,
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Close releases the server's resources.
func (s *Server) Close() error {
	if s.auditLog != nil {
		s.auditLog.Close()
	}
	return s.store.Close()
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
