//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: HTTP API server and request handlers. Requests are turned into
// intents for the watcher loop; the server never calls Spotify for playback.
//

package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudmanic/spotify-player/event"
	"github.com/cloudmanic/spotify-player/state"
)

const (
	pushTimeout     = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server is the remote control surface.
type Server struct {
	queue       IntentQueue
	state       state.Reader
	resolver    PlaylistResolver
	auth        Authorizer
	accessToken string
	logger      *zap.Logger
}

// New builds a Server. Requests must carry accessToken; an empty token
// rejects every API request.
func New(queue IntentQueue, reader state.Reader, resolver PlaylistResolver, auth Authorizer, accessToken string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		queue:       queue,
		state:       reader,
		resolver:    resolver,
		auth:        auth,
		accessToken: accessToken,
		logger:      logger,
	}
}

// loggingResponseWriter wraps http.ResponseWriter to capture the status code.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing it.
func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware wraps an http.Handler and logs each request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", lrw.statusCode),
			zap.Duration("took", time.Since(start)))
	})
}

// Handler returns the routes wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/auth", s.handleAuth)
	mux.HandleFunc("/callback", s.handleAuthCallback)
	mux.HandleFunc("/api/v1/intent/{name}", s.handleIntent)
	mux.HandleFunc("/api/v1/state", s.handleState)
	return s.loggingMiddleware(mux)
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("API server started",
		zap.String("addr", addr),
		zap.Strings("endpoints", []string{
			"GET|POST /api/v1/intent/{name}?playlist=<name|id|url>&q=<query>&order=<order>",
			"GET /api/v1/state",
		}))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// authorized checks the access token from the query string or the
// Authorization header.
func (s *Server) authorized(r *http.Request) bool {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	if s.accessToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.accessToken)) == 1
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, APIResponse{Success: false, Error: msg})
}

// handleRoot handles requests to the root path with a simple message.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, "spotify-player is running")
}

// handleAuth redirects the user to Spotify's authorization page.
// Requires the API access token for security.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		http.Error(w, "Unauthorized: Invalid or missing access token", http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, s.auth.AuthURL(), http.StatusTemporaryRedirect)
}

// handleAuthCallback handles the OAuth callback from Spotify and asks the
// loop to pick up the new token.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if _, err := s.auth.CompleteAuth(r); err != nil {
		http.Error(w, "Failed to get token: "+err.Error(), http.StatusForbidden)
		return
	}

	if _, err := s.push(r.Context(), event.RefreshToken{}); err != nil {
		s.logger.Warn("failed to queue token refresh", zap.Error(err))
	}

	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, "Authentication successful! You can close this window.")
}

// handleIntent queues the intent named in the path.
func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.authorized(r) {
		s.writeError(w, http.StatusUnauthorized, "Invalid or missing access token")
		return
	}

	name := r.PathValue("name")
	intent, status, err := s.parseIntent(r, name)
	if err != nil {
		s.writeError(w, status, err.Error())
		return
	}

	id, err := s.push(r.Context(), intent)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "intent queue is full")
		return
	}

	s.writeJSON(w, http.StatusAccepted, APIResponse{
		Success:  true,
		Message:  fmt.Sprintf("%s queued", intent.Name()),
		IntentID: id.String(),
	})
}

// parseIntent builds the intent from the path name and query parameters.
// Playlist inputs are resolved to an ID before queueing.
func (s *Server) parseIntent(r *http.Request, name string) (event.Intent, int, error) {
	query := r.URL.Query()

	var arg string
	switch strings.ToLower(name) {
	case event.LoadPlaylist{}.Name():
		input := strings.TrimSpace(query.Get("playlist"))
		if input == "" {
			return nil, http.StatusBadRequest, errors.New("playlist parameter is required")
		}
		id, err := s.resolver.ResolvePlaylistID(r.Context(), input)
		if err != nil {
			return nil, http.StatusBadGateway, fmt.Errorf("resolve playlist: %w", err)
		}
		arg = id
	case event.SearchInContext{}.Name():
		arg = query.Get("q")
	case event.SortPlaylistTracks{}.Name():
		arg = query.Get("order")
	}

	intent, err := event.Parse(name, arg)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return intent, http.StatusOK, nil
}

func (s *Server) push(ctx context.Context, intent event.Intent) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()
	return s.queue.Push(ctx, intent)
}

// handleState returns the current state snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.authorized(r) {
		s.writeError(w, http.StatusUnauthorized, "Invalid or missing access token")
		return
	}
	s.writeJSON(w, http.StatusOK, newStateResponse(s.state.Snapshot(), time.Now()))
}
