// Package http is the HTTP adapter: routing, request decoding, error
// mapping and response streaming.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/souravslg/Downfiles/internal/domain"
	"github.com/souravslg/Downfiles/internal/worker"
)

// Server is the HTTP adapter for the download service.
type Server struct {
	svc    *domain.DownloadService
	pool   *worker.Pool
	router *mux.Router
	server *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(svc *domain.DownloadService, pool *worker.Pool, addr string) *Server {
	s := &Server{
		svc:    svc,
		pool:   pool,
		router: mux.NewRouter(),
	}
	s.routes()
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
		// WriteTimeout stays zero: artifact delivery can outlive any
		// fixed bound.
		WriteTimeout: 0,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(Logging())
	s.router.Use(Metrics())

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/info", s.handleInfo).Methods("POST")
	api.HandleFunc("/download", s.handleDownload).Methods("GET", "POST")
	api.HandleFunc("/download-link", s.handleCreateJob).Methods("POST")
	api.HandleFunc("/status/{jobID}", s.handleJobStatus).Methods("GET")
	api.HandleFunc("/stream/{jobID}", s.handleJobStream).Methods("GET")
	api.HandleFunc("/history", s.handleHistory).Methods("GET")
}

// errorResponse is the JSON error body; details carries truncated
// extractor diagnostics when available.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// boolish accepts the original API's loose booleans: true, "true", "1".
type boolish bool

func (b *boolish) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*b = boolish(s == "1" || s == "true")
	return nil
}

func parseBoolish(s string) bool {
	return s == "1" || s == "true"
}

func parseLimit(r *http.Request, def, max int) int {
	limit := def
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > max {
		limit = max
	}
	return limit
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ServeHTTP implements http.Handler for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Addr returns the server address.
func (s *Server) Addr() string {
	return s.server.Addr
}
