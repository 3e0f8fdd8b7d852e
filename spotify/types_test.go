//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Unit tests for domain types, error mapping and token storage.
//

package spotify

import (
	"context"
	"errors"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	spotifyLib "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// TestRepeatModeCycle tests that three steps return to the starting mode.
func TestRepeatModeCycle(t *testing.T) {
	for _, start := range []RepeatMode{RepeatOff, RepeatTrack, RepeatContext} {
		if got := start.Next().Next().Next(); got != start {
			t.Errorf("three steps from %s = %s", start, got)
		}
	}

	tests := []struct {
		from, want RepeatMode
	}{
		{RepeatOff, RepeatTrack},
		{RepeatTrack, RepeatContext},
		{RepeatContext, RepeatOff},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.from, got, tt.want)
		}
	}
}

// TestParseRepeatMode tests parsing the API's repeat state strings.
func TestParseRepeatMode(t *testing.T) {
	tests := []struct {
		input string
		want  RepeatMode
	}{
		{"track", RepeatTrack},
		{"Context", RepeatContext},
		{"off", RepeatOff},
		{"", RepeatOff},
	}
	for _, tt := range tests {
		if got := ParseRepeatMode(tt.input); got != tt.want {
			t.Errorf("ParseRepeatMode(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

// TestTrackDescription tests the searchable track description.
func TestTrackDescription(t *testing.T) {
	track := Track{Name: "Song", Artists: []string{"A", "B"}, Album: "Record"}
	if got := track.ArtistNames(); got != "A, B" {
		t.Errorf("ArtistNames() = %q", got)
	}
	if got := track.Description(); got != "Song A, B Record" {
		t.Errorf("Description() = %q", got)
	}
	if got := (Track{Name: "Solo"}).Description(); got != "Solo" {
		t.Errorf("Description() = %q, want %q", got, "Solo")
	}
}

// TestHasContextURI tests the context check, including a nil playback context.
func TestHasContextURI(t *testing.T) {
	var pc *PlaybackContext
	if pc.HasContextURI() {
		t.Error("expected nil context to have no context URI")
	}
	if (&PlaybackContext{}).HasContextURI() {
		t.Error("expected empty context to have no context URI")
	}
	if !(&PlaybackContext{ContextURI: "spotify:album:x"}).HasContextURI() {
		t.Error("expected context URI to be reported")
	}
}

// TestMapError tests that errors are classified by kind and keep their cause.
func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"api error", spotifyLib.Error{Message: "Not found", Status: 404}, ErrRemoteCall},
		{"oauth error", &oauth2.RetrieveError{ErrorCode: "invalid_grant"}, ErrAuthFailure},
		{"url error", &url.Error{Op: "Get", URL: "https://api.spotify.com", Err: errors.New("refused")}, ErrNetwork},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("refused")}, ErrNetwork},
		{"other", errors.New("weird"), ErrRemoteCall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError(OpNext, tt.err)
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected kind %v, got %v", tt.kind, err)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("expected cause %v to be kept, got %v", tt.err, err)
			}
		})
	}

	if err := mapError(OpNext, nil); err != nil {
		t.Errorf("mapError(nil) = %v, want nil", err)
	}
}

// TestNoActiveContextError tests the error for intents that need playback.
func TestNoActiveContextError(t *testing.T) {
	err := NoActiveContext(OpShuffle)
	if !errors.Is(err, ErrNoActiveContext) {
		t.Errorf("expected ErrNoActiveContext, got %v", err)
	}
	if errors.Is(err, ErrRemoteCall) {
		t.Error("did not expect ErrRemoteCall")
	}
	if err.Error() != "failed to set shuffle: no active playback context" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

// TestSaveAndLoadToken tests that a saved token reads back from disk.
func TestSaveAndLoadToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "nested", "token.json")
	auth := NewAuth("id", "secret", "http://127.0.0.1:8888/callback", tokenFile, nil)

	tok := &oauth2.Token{
		AccessToken:  "test-access-token",
		TokenType:    "Bearer",
		RefreshToken: "test-refresh-token",
		Expiry:       time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
	if err := auth.SaveToken(tok); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}

	info, err := os.Stat(tokenFile)
	if err != nil {
		t.Fatalf("failed to stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file mode = %o, want 600", perm)
	}

	loaded, err := NewAuth("id", "secret", "", tokenFile, nil).LoadToken()
	if err != nil {
		t.Fatalf("failed to load token: %v", err)
	}
	if loaded.AccessToken != tok.AccessToken || loaded.RefreshToken != tok.RefreshToken {
		t.Errorf("loaded token = %+v, want %+v", loaded, tok)
	}
	if !loaded.Expiry.Equal(tok.Expiry) {
		t.Errorf("loaded expiry = %s, want %s", loaded.Expiry, tok.Expiry)
	}
}

// TestLoadTokenMissing tests loading when no token was saved.
func TestLoadTokenMissing(t *testing.T) {
	auth := NewAuth("id", "secret", "", filepath.Join(t.TempDir(), "none.json"), nil)
	if _, err := auth.LoadToken(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
	if auth.Token() != nil {
		t.Error("expected no token")
	}
}

// TestRefreshWithoutToken tests that a refresh needs a saved token.
func TestRefreshWithoutToken(t *testing.T) {
	auth := NewAuth("id", "secret", "", filepath.Join(t.TempDir(), "none.json"), nil)
	if _, _, err := auth.Refresh(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
}

// TestAuthURL tests the authorization URL parameters.
func TestAuthURL(t *testing.T) {
	auth := NewAuth("client123", "secret", "http://127.0.0.1:8888/callback", "", nil)
	u, err := url.Parse(auth.AuthURL())
	if err != nil {
		t.Fatalf("failed to parse auth URL: %v", err)
	}

	q := u.Query()
	if got := q.Get("client_id"); got != "client123" {
		t.Errorf("client_id = %q", got)
	}
	if got := q.Get("redirect_uri"); got != "http://127.0.0.1:8888/callback" {
		t.Errorf("redirect_uri = %q", got)
	}
	if got := q.Get("state"); got != oauthState {
		t.Errorf("state = %q, want %q", got, oauthState)
	}
}
