//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Authentication logic for the Spotify OAuth flow and the
// lifecycle of the bearer token.
//

package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	spotifyLib "github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
)

const oauthState = "spotify-player-state"

// Scopes requested from the user.
var Scopes = []string{
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserModifyPlaybackState,
	spotifyauth.ScopeUserReadCurrentlyPlaying,
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopePlaylistReadCollaborative,
}

// Auth owns the OAuth authenticator and the current token.
type Auth struct {
	mu            sync.Mutex
	authenticator *spotifyauth.Authenticator
	redirectURI   string
	tokenFile     string
	token         *oauth2.Token
	logger        *zap.Logger
}

// NewAuth initializes the Spotify authenticator with the provided credentials.
func NewAuth(clientID, clientSecret, redirectURI, tokenFile string, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		authenticator: spotifyauth.New(
			spotifyauth.WithClientID(clientID),
			spotifyauth.WithClientSecret(clientSecret),
			spotifyauth.WithRedirectURL(redirectURI),
			spotifyauth.WithScopes(Scopes...),
		),
		redirectURI: redirectURI,
		tokenFile:   tokenFile,
		logger:      logger,
	}
}

// AuthURL returns the Spotify authorization page URL.
func (a *Auth) AuthURL() string {
	return a.authenticator.AuthURL(oauthState)
}

// Token returns the current token, or nil before authentication.
func (a *Auth) Token() *oauth2.Token {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// SetToken replaces the current token.
func (a *Auth) SetToken(tok *oauth2.Token) {
	a.mu.Lock()
	a.token = tok
	a.mu.Unlock()
}

// NewClient builds a Spotify client that authenticates with tok.
func (a *Auth) NewClient(ctx context.Context, tok *oauth2.Token) *spotifyLib.Client {
	return spotifyLib.New(a.authenticator.Client(ctx, tok))
}

// CompleteAuth handles the OAuth callback request, exchanges the code for a
// token and saves it for future use.
func (a *Auth) CompleteAuth(r *http.Request) (*oauth2.Token, error) {
	tok, err := a.authenticator.Token(r.Context(), oauthState, r)
	if err != nil {
		return nil, fmt.Errorf("couldn't get token: %w", err)
	}

	if st := r.FormValue("state"); st != oauthState {
		return nil, fmt.Errorf("state mismatch: %s != %s", st, oauthState)
	}

	a.SetToken(tok)
	if err := a.SaveToken(tok); err != nil {
		a.logger.Warn("failed to save token", zap.Error(err))
	}
	return tok, nil
}

// Authenticate starts the OAuth flow and blocks until the callback arrives.
// It starts a local HTTP server on the redirect URI's host to handle the
// callback from Spotify.
func (a *Auth) Authenticate(ctx context.Context) (*oauth2.Token, error) {
	redirect, err := url.Parse(a.redirectURI)
	if err != nil {
		return nil, fmt.Errorf("parse redirect uri: %w", err)
	}

	type result struct {
		tok *oauth2.Token
		err error
	}
	done := make(chan result, 1)
	report := func(res result) {
		select {
		case done <- res:
		default:
		}
	}

	callbackPath := redirect.Path
	if callbackPath == "" || callbackPath == "/" {
		callbackPath = "/callback"
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		tok, err := a.CompleteAuth(r)
		if err != nil {
			http.Error(w, "Couldn't get token", http.StatusForbidden)
		} else {
			fmt.Fprint(w, "Authentication successful! You can close this window.")
		}
		report(result{tok: tok, err: err})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		a.logger.Debug("got request", zap.String("url", r.URL.String()))
	})

	srv := &http.Server{Addr: redirect.Host, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			report(result{err: fmt.Errorf("callback server: %w", err)})
		}
	}()
	defer srv.Close()

	fmt.Println("Please visit this URL to authenticate:")
	fmt.Println(a.AuthURL())

	// Wait for auth to complete
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.tok, res.err
	}
}

// Refresh returns a valid token, refreshing it when it has expired, and a
// client bound to it. The token is persisted when it changed.
func (a *Auth) Refresh(ctx context.Context) (*oauth2.Token, API, error) {
	current := a.Token()
	if current == nil {
		return nil, nil, errors.New("not authenticated")
	}

	tok, err := a.authenticator.RefreshToken(ctx, current)
	if err != nil {
		return nil, nil, err
	}
	if tok == nil || tok.AccessToken == "" {
		return nil, nil, errors.New("empty token returned")
	}

	if tok.AccessToken != current.AccessToken {
		if err := a.SaveToken(tok); err != nil {
			a.logger.Warn("failed to save token", zap.Error(err))
		}
	}
	a.SetToken(tok)

	return tok, a.NewClient(ctx, tok), nil
}

// SaveToken saves the OAuth token to the token file for reuse in future sessions.
func (a *Auth) SaveToken(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(a.tokenFile), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	file, err := os.OpenFile(a.tokenFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create token file: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(token); err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	return nil
}

// LoadToken loads a previously saved OAuth token from disk and makes it the
// current token.
func (a *Auth) LoadToken() (*oauth2.Token, error) {
	file, err := os.Open(a.tokenFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var token oauth2.Token
	if err := json.NewDecoder(file).Decode(&token); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	a.SetToken(&token)
	return &token, nil
}
