//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Mock gateway used by the control tests.
//

package control

import (
	"context"
	"sync"
	"time"

	"github.com/cloudmanic/spotify-player/spotify"
)

// MockGateway is a mock implementation of the Gateway interface for testing.
// Every call is recorded by name.
type MockGateway struct {
	mu    sync.Mutex
	calls []string

	RefreshCredentialFunc       func(ctx context.Context) (time.Time, error)
	FetchCurrentPlaybackFunc    func(ctx context.Context) (*spotify.PlaybackContext, error)
	FetchPlaylistFunc           func(ctx context.Context, id string) (*spotify.Playlist, error)
	FetchPlaylistTracksPageFunc func(ctx context.Context, cursor spotify.PageCursor) ([]spotify.PlaylistItem, *spotify.PageCursor, error)
	StartPlaybackFunc           func(ctx context.Context, contextURI, trackURI string) error
	ResumeFunc                  func(ctx context.Context) error
	PauseFunc                   func(ctx context.Context) error
	NextFunc                    func(ctx context.Context) error
	PreviousFunc                func(ctx context.Context) error
	SetShuffleFunc              func(ctx context.Context, shuffle bool) error
	SetRepeatFunc               func(ctx context.Context, mode spotify.RepeatMode) error
}

var _ Gateway = (*MockGateway)(nil)

func (m *MockGateway) record(name string) {
	m.mu.Lock()
	m.calls = append(m.calls, name)
	m.mu.Unlock()
}

// Calls returns the names of the calls made so far.
func (m *MockGateway) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Reset forgets the recorded calls.
func (m *MockGateway) Reset() {
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}

// RefreshCredential returns an expiry one hour ahead.
func (m *MockGateway) RefreshCredential(ctx context.Context) (time.Time, error) {
	m.record("RefreshCredential")
	if m.RefreshCredentialFunc != nil {
		return m.RefreshCredentialFunc(ctx)
	}
	return time.Now().Add(time.Hour), nil
}

// FetchCurrentPlayback returns nothing playing.
func (m *MockGateway) FetchCurrentPlayback(ctx context.Context) (*spotify.PlaybackContext, error) {
	m.record("FetchCurrentPlayback")
	if m.FetchCurrentPlaybackFunc != nil {
		return m.FetchCurrentPlaybackFunc(ctx)
	}
	return nil, nil
}

// FetchPlaylist returns a playlist with the requested id.
func (m *MockGateway) FetchPlaylist(ctx context.Context, id string) (*spotify.Playlist, error) {
	m.record("FetchPlaylist")
	if m.FetchPlaylistFunc != nil {
		return m.FetchPlaylistFunc(ctx, id)
	}
	return &spotify.Playlist{ID: id, Name: "Test Playlist", URI: "spotify:playlist:" + id}, nil
}

// FetchPlaylistTracksPage returns a single empty page.
func (m *MockGateway) FetchPlaylistTracksPage(ctx context.Context, cursor spotify.PageCursor) ([]spotify.PlaylistItem, *spotify.PageCursor, error) {
	m.record("FetchPlaylistTracksPage")
	if m.FetchPlaylistTracksPageFunc != nil {
		return m.FetchPlaylistTracksPageFunc(ctx, cursor)
	}
	return nil, nil, nil
}

// StartPlayback starts playback.
func (m *MockGateway) StartPlayback(ctx context.Context, contextURI, trackURI string) error {
	m.record("StartPlayback")
	if m.StartPlaybackFunc != nil {
		return m.StartPlaybackFunc(ctx, contextURI, trackURI)
	}
	return nil
}

// Resume resumes playback.
func (m *MockGateway) Resume(ctx context.Context) error {
	m.record("Resume")
	if m.ResumeFunc != nil {
		return m.ResumeFunc(ctx)
	}
	return nil
}

// Pause pauses playback.
func (m *MockGateway) Pause(ctx context.Context) error {
	m.record("Pause")
	if m.PauseFunc != nil {
		return m.PauseFunc(ctx)
	}
	return nil
}

// Next skips forward.
func (m *MockGateway) Next(ctx context.Context) error {
	m.record("Next")
	if m.NextFunc != nil {
		return m.NextFunc(ctx)
	}
	return nil
}

// Previous skips back.
func (m *MockGateway) Previous(ctx context.Context) error {
	m.record("Previous")
	if m.PreviousFunc != nil {
		return m.PreviousFunc(ctx)
	}
	return nil
}

// SetShuffle sets shuffle mode.
func (m *MockGateway) SetShuffle(ctx context.Context, shuffle bool) error {
	m.record("SetShuffle")
	if m.SetShuffleFunc != nil {
		return m.SetShuffleFunc(ctx, shuffle)
	}
	return nil
}

// SetRepeat sets repeat mode.
func (m *MockGateway) SetRepeat(ctx context.Context, mode spotify.RepeatMode) error {
	m.record("SetRepeat")
	if m.SetRepeatFunc != nil {
		return m.SetRepeatFunc(ctx, mode)
	}
	return nil
}

// pagedTracks serves items in pages of pageSize, like the playlist items
// endpoint does.
func pagedTracks(items []spotify.PlaylistItem, pageSize int) func(ctx context.Context, cursor spotify.PageCursor) ([]spotify.PlaylistItem, *spotify.PageCursor, error) {
	return func(ctx context.Context, cursor spotify.PageCursor) ([]spotify.PlaylistItem, *spotify.PageCursor, error) {
		end := cursor.Offset + pageSize
		if end > len(items) {
			end = len(items)
		}
		page := items[cursor.Offset:end]
		if end == len(items) {
			return page, nil, nil
		}
		return page, &spotify.PageCursor{PlaylistID: cursor.PlaylistID, Offset: end}, nil
	}
}

func item(name string) spotify.PlaylistItem {
	return spotify.PlaylistItem{Track: &spotify.Track{ID: name, URI: "spotify:track:" + name, Name: name}}
}

func missingItem() spotify.PlaylistItem {
	return spotify.PlaylistItem{}
}
