//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Spotify API surface and the playback/catalog value types shared
// with the rest of the player.
//

package spotify

import (
	"context"
	"strings"
	"time"

	spotifyLib "github.com/zmb3/spotify/v2"
)

// API defines the subset of the Spotify Web API client the player uses.
// This allows for mocking in tests.
type API interface {
	CurrentUser(ctx context.Context) (*spotifyLib.PrivateUser, error)
	CurrentUsersPlaylists(ctx context.Context, opts ...spotifyLib.RequestOption) (*spotifyLib.SimplePlaylistPage, error)
	PlayerDevices(ctx context.Context) ([]spotifyLib.PlayerDevice, error)
	PlayerState(ctx context.Context, opts ...spotifyLib.RequestOption) (*spotifyLib.PlayerState, error)
	GetPlaylist(ctx context.Context, playlistID spotifyLib.ID, opts ...spotifyLib.RequestOption) (*spotifyLib.FullPlaylist, error)
	GetPlaylistItems(ctx context.Context, playlistID spotifyLib.ID, opts ...spotifyLib.RequestOption) (*spotifyLib.PlaylistItemPage, error)
	PlayOpt(ctx context.Context, opts *spotifyLib.PlayOptions) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Shuffle(ctx context.Context, shuffle bool) error
	Repeat(ctx context.Context, state string) error
	TransferPlayback(ctx context.Context, deviceID spotifyLib.ID, play bool) error
}

var _ API = (*spotifyLib.Client)(nil)

// RepeatMode is the repeat setting of the active playback.
type RepeatMode string

const (
	RepeatOff     RepeatMode = "off"
	RepeatTrack   RepeatMode = "track"
	RepeatContext RepeatMode = "context"
)

// Next returns the mode that follows m: off, track, context, then off again.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatTrack
	case RepeatTrack:
		return RepeatContext
	default:
		return RepeatOff
	}
}

// ParseRepeatMode maps the API's repeat_state string to a RepeatMode.
// Unknown values are treated as off.
func ParseRepeatMode(s string) RepeatMode {
	switch RepeatMode(strings.ToLower(s)) {
	case RepeatTrack:
		return RepeatTrack
	case RepeatContext:
		return RepeatContext
	default:
		return RepeatOff
	}
}

// Device is a Spotify Connect device.
type Device struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

// Track is a playable track. AddedAt is only set for playlist tracks.
type Track struct {
	ID       string        `json:"id"`
	URI      string        `json:"uri"`
	Name     string        `json:"name"`
	Artists  []string      `json:"artists"`
	Album    string        `json:"album"`
	Duration time.Duration `json:"duration"`
	AddedAt  time.Time     `json:"added_at,omitempty"`
}

// ArtistNames joins the track's artists with a comma.
func (t Track) ArtistNames() string {
	return strings.Join(t.Artists, ", ")
}

// Description is the text a track is searched and displayed by:
// name, artists and album separated by spaces.
func (t Track) Description() string {
	return strings.TrimSpace(strings.Join([]string{t.Name, t.ArtistNames(), t.Album}, " "))
}

// PlaybackContext is a snapshot of what the user's account is currently playing.
type PlaybackContext struct {
	ContextURI  string        `json:"context_uri,omitempty"`
	ContextType string        `json:"context_type,omitempty"`
	Device      Device        `json:"device"`
	Track       *Track        `json:"track,omitempty"`
	IsPlaying   bool          `json:"is_playing"`
	Shuffle     bool          `json:"shuffle"`
	Repeat      RepeatMode    `json:"repeat"`
	Progress    time.Duration `json:"progress"`
}

// HasContextURI reports whether playback is anchored to a playlist, album or artist.
func (p *PlaybackContext) HasContextURI() bool {
	return p != nil && p.ContextURI != ""
}

// Playlist is playlist metadata without its tracks.
type Playlist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URI        string `json:"uri"`
	Owner      string `json:"owner"`
	TrackTotal int    `json:"track_total"`
}

// PlaylistItem is one entry of a playlist page. Track is nil when the
// underlying track is unavailable or was removed from the catalog.
type PlaylistItem struct {
	AddedAt time.Time
	Track   *Track
}

// PageCursor points at the next page of a playlist's items.
type PageCursor struct {
	PlaylistID string
	Offset     int
}
