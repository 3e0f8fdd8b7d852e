//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Type definitions and interfaces for the HTTP API.
//

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/cloudmanic/spotify-player/event"
	"github.com/cloudmanic/spotify-player/spotify"
	"github.com/cloudmanic/spotify-player/state"
)

// IntentQueue accepts intents for the watcher loop.
type IntentQueue interface {
	Push(ctx context.Context, intent event.Intent) (uuid.UUID, error)
}

// PlaylistResolver turns a playlist URL, URI, name or ID into an ID.
type PlaylistResolver interface {
	ResolvePlaylistID(ctx context.Context, input string) (string, error)
}

// Authorizer runs the OAuth flow for the browser endpoints.
type Authorizer interface {
	AuthURL() string
	CompleteAuth(r *http.Request) (*oauth2.Token, error)
}

var (
	_ IntentQueue      = (*event.Queue)(nil)
	_ PlaylistResolver = (*spotify.Gateway)(nil)
	_ Authorizer       = (*spotify.Auth)(nil)
)

// APIResponse represents a standard JSON response for the API.
type APIResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	IntentID string `json:"intent_id,omitempty"`
}

// StateResponse is the JSON form of a state snapshot.
type StateResponse struct {
	state.State
	SelectedTrack  *spotify.Track `json:"selected_track,omitempty"`
	LastError      string         `json:"last_error,omitempty"`
	TokenExpiresIn string         `json:"token_expires_in,omitempty"`
}

func newStateResponse(s state.State, now time.Time) StateResponse {
	resp := StateResponse{State: s}
	if track, ok := s.SelectedTrack(); ok {
		resp.SelectedTrack = &track
	}
	if s.LastError != nil {
		resp.LastError = s.LastError.Error()
	}
	if !s.AuthTokenExpiry.IsZero() {
		resp.TokenExpiresIn = s.AuthTokenExpiry.Sub(now).Round(time.Second).String()
	}
	return resp
}
