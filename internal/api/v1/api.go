// Package v1 implements the netlee REST API: the movie payloads the player
// resolves against, plus library and catalog management.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vmunix/netlee/internal/library"
	"github.com/vmunix/netlee/internal/media"
	"github.com/vmunix/netlee/internal/resolve"
)

// Config holds API server configuration.
type Config struct {
	APIKey       string // empty disables authentication
	Version      string
	StrictOrigin bool   // reject resolve requests without an origin
	TrailerHost  string // used to report trailer embed URLs
	Logger       *slog.Logger
}

// Server is the v1 API server.
type Server struct {
	deps   ServerDeps
	cfg    Config
	logger *slog.Logger
}

// New creates a new v1 API server.
func New(deps ServerDeps, cfg Config) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDependency, err)
	}
	if cfg.TrailerHost == "" {
		cfg.TrailerHost = "www.youtube.com"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{deps: deps, cfg: cfg, logger: logger.With("component", "api")}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	auth := s.requireAPIKey

	// Payloads
	mux.HandleFunc("GET /api/v1/movies/local/{id}", auth(s.getLocalMovie))
	mux.HandleFunc("GET /api/v1/movies/tmdb/{id}", auth(s.requireCatalog(s.getCatalogMovie)))

	// Resolution
	mux.HandleFunc("GET /api/v1/resolve", auth(s.resolveQuery))
	mux.HandleFunc("GET /api/v1/resolve/{origin}/{id}", auth(s.resolvePath))

	// Library
	mux.HandleFunc("GET /api/v1/library", auth(s.listMovies))
	mux.HandleFunc("POST /api/v1/library", auth(s.addMovie))
	mux.HandleFunc("GET /api/v1/library/search", auth(s.searchLibrary))
	mux.HandleFunc("GET /api/v1/library/{id}", auth(s.getMovie))
	mux.HandleFunc("PUT /api/v1/library/{id}", auth(s.updateMovie))
	mux.HandleFunc("DELETE /api/v1/library/{id}", auth(s.deleteMovie))

	// Catalog assets
	mux.HandleFunc("GET /api/v1/catalog/assets", auth(s.listAssets))
	mux.HandleFunc("GET /api/v1/catalog/{tmdb_id}/asset", auth(s.getAsset))
	mux.HandleFunc("PUT /api/v1/catalog/{tmdb_id}/asset", auth(s.setAsset))
	mux.HandleFunc("DELETE /api/v1/catalog/{tmdb_id}/asset", auth(s.deleteAsset))

	// Events
	mux.HandleFunc("GET /api/v1/events", auth(s.requireEventLog(s.listEvents)))
	mux.HandleFunc("GET /api/v1/events/{origin}/{id}", auth(s.requireEventLog(s.listEntityEvents)))

	// System; left open so health checks need no key.
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeMediaError maps resolution errors onto HTTP statuses.
func writeMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, media.ErrInvalidOrigin):
		writeError(w, http.StatusBadRequest, "INVALID_ORIGIN", err.Error())
	case errors.Is(err, resolve.ErrNoSource):
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", err.Error())
	default:
		switch media.KindOf(err) {
		case media.KindMissingIdentifier:
			writeError(w, http.StatusBadRequest, "MISSING_IDENTIFIER", err.Error())
		case media.KindNotFound:
			writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		default:
			writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		}
	}
}

// writeStoreError maps library store errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, library.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", what+" not found")
	case errors.Is(err, library.ErrDuplicate):
		writeError(w, http.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, library.ErrConstraint):
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
	}
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	_, total, err := s.deps.Library.ListMovies(library.MovieFilter{Limit: 1})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:   "ok",
		Version:  s.cfg.Version,
		Movies:   total,
		Catalog:  s.deps.Catalog != nil,
		EventLog: s.deps.EventLog != nil,
	})
}
