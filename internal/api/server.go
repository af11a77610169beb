// Package api serves the catalog over HTTP as a JSON API.
//
// Routes mirror the catalog service one to one: entity CRUD and search under
// /entities/, the tag registry under /tags/, and media upload, remote fetch
// and static serving under /upload/, /fetch-media/ and /media/.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jpl-au/entlog/internal/config"
	"github.com/jpl-au/entlog/internal/media"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/jpl-au/entlog/internal/validate"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Server is an HTTP API server in front of a catalog service.
type Server struct {
	svc     service.Service
	cfg     *config.Config
	media   *media.Store
	fetcher *media.Fetcher
	limiter *RateLimiter
	logger  *slog.Logger
}

// NewServer creates a Server. Settings (token, CORS origin, rate limit,
// media limits) come from the service configuration.
func NewServer(svc service.Service, logger *slog.Logger) *Server {
	cfg := svc.Config()
	st := media.NewStore(svc.MediaDir(), cfg.MaxUpload())
	return &Server{
		svc:     svc,
		cfg:     cfg,
		media:   st,
		fetcher: media.NewFetcher(st, media.FetcherConfig{Timeout: cfg.FetchTimeout()}),
		limiter: NewRateLimiter(cfg.RateLimit(), cfg.Burst()),
		logger:  logger,
	}
}

// Handler returns an http.Handler with all routes and middleware registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check: no auth, no rate limit.
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("POST /entities/{$}", s.auth(s.handleCreateEntity))
	mux.HandleFunc("GET /entities/{$}", s.auth(s.handleListEntities))
	mux.HandleFunc("GET /entities/{id}", s.auth(s.handleGetEntity))
	mux.HandleFunc("PUT /entities/{id}", s.auth(s.handleUpdateEntity))
	mux.HandleFunc("DELETE /entities/{id}", s.auth(s.handleDeleteEntity))

	mux.HandleFunc("GET /tags/{$}", s.auth(s.handleListTags))
	mux.HandleFunc("PUT /tags/{id}", s.auth(s.handleRenameTag))
	mux.HandleFunc("DELETE /tags/{id}", s.auth(s.handleDeleteTag))

	mux.HandleFunc("GET /stats", s.auth(s.handleStats))

	mux.HandleFunc("POST /upload/{$}", s.auth(s.handleUpload))
	mux.HandleFunc("POST /fetch-media/{$}", s.auth(s.handleFetchMedia))
	mux.Handle("GET "+media.URLPrefix, mediaFiles(s.media.Dir()))

	return s.cors(s.rateLimit(mux))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("api shutting down")
		return Shutdown(srv, 10*time.Second)
	}
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// --- helpers ---

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps a catalog error to a status: validation failures
// are 400, missing records 404, everything else 500. what names the missing
// record ("Entity", "Tag").
func (s *Server) writeServiceError(w http.ResponseWriter, what string, err error) {
	switch {
	case validate.IsValidation(err):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		s.writeError(w, http.StatusNotFound, what+" not found")
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
