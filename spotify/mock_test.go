//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Test doubles for the Spotify client and token source.
//

package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	spotifyLib "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// MockAPI is a mock implementation of the API interface for testing.
type MockAPI struct {
	CurrentUserFunc           func(ctx context.Context) (*spotifyLib.PrivateUser, error)
	CurrentUsersPlaylistsFunc func(ctx context.Context, opts ...spotifyLib.RequestOption) (*spotifyLib.SimplePlaylistPage, error)
	PlayerDevicesFunc         func(ctx context.Context) ([]spotifyLib.PlayerDevice, error)
	PlayerStateFunc           func(ctx context.Context, opts ...spotifyLib.RequestOption) (*spotifyLib.PlayerState, error)
	GetPlaylistFunc           func(ctx context.Context, playlistID spotifyLib.ID, opts ...spotifyLib.RequestOption) (*spotifyLib.FullPlaylist, error)
	GetPlaylistItemsFunc      func(ctx context.Context, playlistID spotifyLib.ID, opts ...spotifyLib.RequestOption) (*spotifyLib.PlaylistItemPage, error)
	PlayOptFunc               func(ctx context.Context, opts *spotifyLib.PlayOptions) error
	TransferPlaybackFunc      func(ctx context.Context, deviceID spotifyLib.ID, play bool) error

	// simple calls that only return an error
	Err error

	// Calls records the names of the methods invoked.
	Calls []string

	// LastShuffle and LastRepeat hold the arguments of the last calls.
	LastShuffle bool
	LastRepeat  string
}

var _ API = (*MockAPI)(nil)

// CurrentUser returns the current user.
func (m *MockAPI) CurrentUser(ctx context.Context) (*spotifyLib.PrivateUser, error) {
	m.Calls = append(m.Calls, "CurrentUser")
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return &spotifyLib.PrivateUser{
		User: spotifyLib.User{
			DisplayName: "Test User",
			ID:          "testuser123",
		},
	}, nil
}

// CurrentUsersPlaylists returns the user's playlists.
func (m *MockAPI) CurrentUsersPlaylists(ctx context.Context, opts ...spotifyLib.RequestOption) (*spotifyLib.SimplePlaylistPage, error) {
	m.Calls = append(m.Calls, "CurrentUsersPlaylists")
	if m.CurrentUsersPlaylistsFunc != nil {
		return m.CurrentUsersPlaylistsFunc(ctx, opts...)
	}
	return &spotifyLib.SimplePlaylistPage{
		Playlists: []spotifyLib.SimplePlaylist{
			{ID: "playlist123", Name: "Test Playlist"},
			{ID: "playlist456", Name: "Another Playlist"},
		},
	}, nil
}

// PlayerDevices returns available devices.
func (m *MockAPI) PlayerDevices(ctx context.Context) ([]spotifyLib.PlayerDevice, error) {
	m.Calls = append(m.Calls, "PlayerDevices")
	if m.PlayerDevicesFunc != nil {
		return m.PlayerDevicesFunc(ctx)
	}
	return []spotifyLib.PlayerDevice{
		{ID: "device123", Name: "Living Room Speaker", Type: "Speaker", Active: true},
		{ID: "device456", Name: "Kitchen Speaker", Type: "Speaker", Active: false},
	}, nil
}

// PlayerState returns the playback state.
func (m *MockAPI) PlayerState(ctx context.Context, opts ...spotifyLib.RequestOption) (*spotifyLib.PlayerState, error) {
	m.Calls = append(m.Calls, "PlayerState")
	if m.PlayerStateFunc != nil {
		return m.PlayerStateFunc(ctx, opts...)
	}
	return &spotifyLib.PlayerState{}, nil
}

// GetPlaylist returns a playlist by ID.
func (m *MockAPI) GetPlaylist(ctx context.Context, playlistID spotifyLib.ID, opts ...spotifyLib.RequestOption) (*spotifyLib.FullPlaylist, error) {
	m.Calls = append(m.Calls, "GetPlaylist")
	if m.GetPlaylistFunc != nil {
		return m.GetPlaylistFunc(ctx, playlistID, opts...)
	}
	return fullPlaylist(string(playlistID), "Test Playlist", 0), nil
}

// GetPlaylistItems returns a page of playlist items.
func (m *MockAPI) GetPlaylistItems(ctx context.Context, playlistID spotifyLib.ID, opts ...spotifyLib.RequestOption) (*spotifyLib.PlaylistItemPage, error) {
	m.Calls = append(m.Calls, "GetPlaylistItems")
	if m.GetPlaylistItemsFunc != nil {
		return m.GetPlaylistItemsFunc(ctx, playlistID, opts...)
	}
	return itemPage(false), nil
}

// PlayOpt starts playback with options.
func (m *MockAPI) PlayOpt(ctx context.Context, opts *spotifyLib.PlayOptions) error {
	m.Calls = append(m.Calls, "PlayOpt")
	if m.PlayOptFunc != nil {
		return m.PlayOptFunc(ctx, opts)
	}
	return m.Err
}

// Play resumes playback.
func (m *MockAPI) Play(ctx context.Context) error {
	m.Calls = append(m.Calls, "Play")
	return m.Err
}

// Pause pauses playback.
func (m *MockAPI) Pause(ctx context.Context) error {
	m.Calls = append(m.Calls, "Pause")
	return m.Err
}

// Next skips to the next track.
func (m *MockAPI) Next(ctx context.Context) error {
	m.Calls = append(m.Calls, "Next")
	return m.Err
}

// Previous skips to the previous track.
func (m *MockAPI) Previous(ctx context.Context) error {
	m.Calls = append(m.Calls, "Previous")
	return m.Err
}

// Shuffle sets shuffle mode.
func (m *MockAPI) Shuffle(ctx context.Context, shuffle bool) error {
	m.Calls = append(m.Calls, "Shuffle")
	m.LastShuffle = shuffle
	return m.Err
}

// Repeat sets repeat mode.
func (m *MockAPI) Repeat(ctx context.Context, state string) error {
	m.Calls = append(m.Calls, "Repeat")
	m.LastRepeat = state
	return m.Err
}

// TransferPlayback moves playback to a device.
func (m *MockAPI) TransferPlayback(ctx context.Context, deviceID spotifyLib.ID, play bool) error {
	m.Calls = append(m.Calls, "TransferPlayback")
	if m.TransferPlaybackFunc != nil {
		return m.TransferPlaybackFunc(ctx, deviceID, play)
	}
	return m.Err
}

// mockTokens is a TokenRefresher returning a fixed result.
type mockTokens struct {
	tok *oauth2.Token
	api API
	err error
}

func (m *mockTokens) Refresh(ctx context.Context) (*oauth2.Token, API, error) {
	return m.tok, m.api, m.err
}

// fullPlaylist creates a FullPlaylist with the track total set via JSON
// unmarshaling. This is necessary because the page struct is unexported.
func fullPlaylist(id, name string, total int) *spotifyLib.FullPlaylist {
	data := fmt.Sprintf(`{"id":%q,"name":%q,"uri":"spotify:playlist:%s","owner":{"display_name":"Owner"},"tracks":{"total":%d}}`,
		id, name, id, total)
	var playlist spotifyLib.FullPlaylist
	if err := json.Unmarshal([]byte(data), &playlist); err != nil {
		panic(err)
	}
	return &playlist
}

// itemPage creates a PlaylistItemPage from track names. An empty name is a
// podcast episode, which carries no track. hasNext sets the page's next link.
func itemPage(hasNext bool, names ...string) *spotifyLib.PlaylistItemPage {
	items := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			items = append(items, `{"added_at":"2024-03-01T10:00:00Z","track":{"type":"episode","id":"episode1","name":"Episode"}}`)
			continue
		}
		items = append(items, fmt.Sprintf(
			`{"added_at":"2024-03-01T10:00:00Z","track":{"type":"track","id":%q,"uri":"spotify:track:%s","name":%q,"duration_ms":180000,"artists":[{"name":"Artist"}],"album":{"name":"Album"}}}`,
			name, name, name))
	}

	next := ""
	if hasNext {
		next = "https://api.spotify.com/v1/playlists/x/tracks?offset=100"
	}
	data := fmt.Sprintf(`{"next":%q,"total":%d,"items":[%s]}`, next, len(names), strings.Join(items, ","))

	var page spotifyLib.PlaylistItemPage
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		panic(err)
	}
	return &page
}
