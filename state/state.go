//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Application state and the selection and search rules that
// apply to it.
//

package state

import (
	"strings"
	"time"

	"github.com/cloudmanic/spotify-player/spotify"
)

// SearchState is the result of the last in-context search. While Active, the
// filtered Tracks are the displayed list.
type SearchState struct {
	Query  *string         `json:"query,omitempty"`
	Tracks []spotify.Track `json:"tracks"`
	Active bool            `json:"active"`
}

// State is everything the player knows. Selection indexes DisplayedTracks.
type State struct {
	IsRunning       bool                     `json:"is_running"`
	PlaybackContext *spotify.PlaybackContext `json:"playback_context,omitempty"`
	Playlist        *spotify.Playlist        `json:"playlist,omitempty"`
	PlaylistTracks  []spotify.Track          `json:"playlist_tracks"`
	Selection       *int                     `json:"selection,omitempty"`
	Search          SearchState              `json:"search"`
	AuthTokenExpiry time.Time                `json:"auth_token_expiry"`
	LastRefreshed   time.Time                `json:"last_refreshed"`
	LastError       error                    `json:"-"`
}

// DisplayedTracks returns the list the selection applies to: the search
// results while a search is active, otherwise the playlist tracks.
func (s *State) DisplayedTracks() []spotify.Track {
	if s.Search.Active {
		return s.Search.Tracks
	}
	return s.PlaylistTracks
}

// SelectedTrack returns the track under the selection.
func (s *State) SelectedTrack() (spotify.Track, bool) {
	tracks := s.DisplayedTracks()
	if s.Selection == nil || *s.Selection < 0 || *s.Selection >= len(tracks) {
		return spotify.Track{}, false
	}
	return tracks[*s.Selection], true
}

// ResetSelection selects the first displayed track, or clears the selection
// when nothing is displayed.
func (s *State) ResetSelection() {
	if len(s.DisplayedTracks()) == 0 {
		s.Selection = nil
		return
	}
	first := 0
	s.Selection = &first
}

// MoveSelection moves the selection by delta, clamped to the displayed list.
// It does nothing when there is no selection.
func (s *State) MoveSelection(delta int) {
	if s.Selection == nil {
		return
	}
	n := len(s.DisplayedTracks())
	if n == 0 {
		s.Selection = nil
		return
	}
	idx := *s.Selection + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	s.Selection = &idx
}

// SetPlaylist replaces the loaded playlist and its tracks, drops any search
// and selects the first track.
func (s *State) SetPlaylist(playlist *spotify.Playlist, tracks []spotify.Track) {
	s.Playlist = playlist
	s.PlaylistTracks = tracks
	s.Search = SearchState{}
	s.ResetSelection()
}

// ApplySearch filters the playlist tracks by query, which must start with
// trigger. It reports false, leaving the state untouched, otherwise.
func (s *State) ApplySearch(rawQuery, trigger string) bool {
	if trigger == "" || !strings.HasPrefix(rawQuery, trigger) {
		return false
	}
	query := rawQuery
	s.Search = SearchState{
		Query:  &query,
		Tracks: FilterTracks(s.PlaylistTracks, strings.TrimPrefix(rawQuery, trigger)),
		Active: true,
	}
	s.ResetSelection()
	return true
}

// ClearSearch drops the search so the playlist tracks are displayed again.
func (s *State) ClearSearch() {
	if !s.Search.Active && s.Search.Query == nil {
		return
	}
	s.Search = SearchState{}
	s.ResetSelection()
}

// SortPlaylistTracks reorders the playlist tracks. Active search results are
// recomputed so they follow the new order. The displayed list changes, so
// the selection goes back to the first track.
func (s *State) SortPlaylistTracks(order SortOrder, trigger string) {
	if s.Playlist == nil {
		return
	}
	SortTracks(s.PlaylistTracks, order)
	if s.Search.Active && s.Search.Query != nil {
		s.Search.Tracks = FilterTracks(s.PlaylistTracks, strings.TrimPrefix(*s.Search.Query, trigger))
	}
	s.ResetSelection()
}

func (s State) clone() State {
	dup := s
	dup.PlaylistTracks = cloneTracks(s.PlaylistTracks)
	dup.Search.Tracks = cloneTracks(s.Search.Tracks)
	if s.Search.Query != nil {
		query := *s.Search.Query
		dup.Search.Query = &query
	}
	if s.Selection != nil {
		idx := *s.Selection
		dup.Selection = &idx
	}
	if s.Playlist != nil {
		playlist := *s.Playlist
		dup.Playlist = &playlist
	}
	if s.PlaybackContext != nil {
		pc := *s.PlaybackContext
		if pc.Track != nil {
			track := cloneTrack(*pc.Track)
			pc.Track = &track
		}
		dup.PlaybackContext = &pc
	}
	return dup
}

func cloneTracks(tracks []spotify.Track) []spotify.Track {
	if len(tracks) == 0 {
		return nil
	}
	dup := make([]spotify.Track, len(tracks))
	for i, track := range tracks {
		dup[i] = cloneTrack(track)
	}
	return dup
}

func cloneTrack(t spotify.Track) spotify.Track {
	if t.Artists != nil {
		t.Artists = append([]string(nil), t.Artists...)
	}
	return t
}
