package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps the size of a batch insert request
const maxBodyBytes = 1 << 20

// Server represents the HTTP API server
type Server struct {
	store  *Store
	server *http.Server
	logger zerolog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithReadTimeout sets the HTTP server read timeout
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.server.ReadTimeout = d
	}
}

// NewServer creates a new API server
func NewServer(addr string, store *Store, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		store:  store,
		logger: logger,
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.stats).Methods(http.MethodGet)

	r.HandleFunc("/words", s.lookup).Methods(http.MethodGet)
	r.HandleFunc("/words", s.insertBatch).Methods(http.MethodPost)
	r.HandleFunc("/words/{word:.+}", s.getWord).Methods(http.MethodGet)
	r.HandleFunc("/words/{word:.+}", s.putWord).Methods(http.MethodPut)

	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the address the server is configured to listen on
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens on the configured address and serves until Shutdown is called.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
	}
	return s.Serve(listener)
}

// Serve serves requests on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info().Str("addr", l.Addr().String()).Msg("Server listening")
	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Stats())
}

// lookupResponse is returned by GET /words
type lookupResponse struct {
	Prefix    string   `json:"prefix"`
	HasPrefix bool     `json:"has_prefix"`
	Words     []string `json:"words"`
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	s.writeJSON(w, http.StatusOK, lookupResponse{
		Prefix:    prefix,
		HasPrefix: s.store.HasPrefix(prefix),
		Words:     s.store.Lookup(prefix),
	})
}

// wordResponse is returned by the single word endpoints
type wordResponse struct {
	Word string `json:"word"`
}

func (s *Server) getWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	if !s.store.Contains(word) {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("word %q not found", word))
		return
	}
	s.writeJSON(w, http.StatusOK, wordResponse{Word: word})
}

func (s *Server) putWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	if !s.store.Insert(word) {
		s.logger.Error().Str("word", word).Msg("Failed to insert word")
		s.writeError(w, http.StatusInternalServerError, "store is closed")
		return
	}
	s.writeJSON(w, http.StatusCreated, wordResponse{Word: word})
}

// batchRequest is the body of POST /words
type batchRequest struct {
	Words []string `json:"words"`
}

// batchResponse is returned by POST /words
type batchResponse struct {
	Inserted int `json:"inserted"`
}

func (s *Server) insertBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if err := s.store.InsertAll(req.Words...); err != nil {
		s.logger.Error().Err(err).Int("words", len(req.Words)).Msg("Failed to insert words")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, batchResponse{Inserted: len(req.Words)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
