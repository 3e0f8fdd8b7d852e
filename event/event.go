//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Intents are the user-triggered requests the dispatcher acts on.
//

package event

import (
	"fmt"
	"strings"

	"github.com/cloudmanic/spotify-player/state"
)

// Intent is one of the types declared in this file.
type Intent interface {
	Name() string
	intent()
}

type (
	// RefreshToken renews the bearer credential.
	RefreshToken struct{}
	// RefreshPlayback re-polls the live playback context immediately.
	RefreshPlayback struct{}
	// NextTrack skips to the next track.
	NextTrack struct{}
	// PreviousTrack skips to the previous track.
	PreviousTrack struct{}
	// ResumePause pauses when playing and resumes when paused.
	ResumePause struct{}
	// Shuffle inverts the shuffle flag.
	Shuffle struct{}
	// Repeat advances the repeat mode.
	Repeat struct{}
	// Quit stops the player.
	Quit struct{}
	// LoadPlaylist fetches a playlist and all of its tracks.
	LoadPlaylist struct{ ID string }
	// SelectNext moves the selection down.
	SelectNext struct{}
	// SelectPrevious moves the selection up.
	SelectPrevious struct{}
	// PlaySelectedTrack plays the selected track within the current context.
	PlaySelectedTrack struct{}
	// SearchInContext filters the loaded playlist's tracks.
	SearchInContext struct{ Query string }
	// ClearSearch returns the display to the full playlist.
	ClearSearch struct{}
	// SortPlaylistTracks reorders the loaded playlist's tracks.
	SortPlaylistTracks struct{ Order state.SortOrder }
)

func (RefreshToken) Name() string       { return "refresh-token" }
func (RefreshPlayback) Name() string    { return "refresh-playback" }
func (NextTrack) Name() string          { return "next" }
func (PreviousTrack) Name() string      { return "previous" }
func (ResumePause) Name() string        { return "resume-pause" }
func (Shuffle) Name() string            { return "shuffle" }
func (Repeat) Name() string             { return "repeat" }
func (Quit) Name() string               { return "quit" }
func (LoadPlaylist) Name() string       { return "load-playlist" }
func (SelectNext) Name() string         { return "select-next" }
func (SelectPrevious) Name() string     { return "select-previous" }
func (PlaySelectedTrack) Name() string  { return "play-selected" }
func (SearchInContext) Name() string    { return "search" }
func (ClearSearch) Name() string        { return "clear-search" }
func (SortPlaylistTracks) Name() string { return "sort" }

func (RefreshToken) intent()       {}
func (RefreshPlayback) intent()    {}
func (NextTrack) intent()          {}
func (PreviousTrack) intent()      {}
func (ResumePause) intent()        {}
func (Shuffle) intent()            {}
func (Repeat) intent()             {}
func (Quit) intent()               {}
func (LoadPlaylist) intent()       {}
func (SelectNext) intent()         {}
func (SelectPrevious) intent()     {}
func (PlaySelectedTrack) intent()  {}
func (SearchInContext) intent()    {}
func (ClearSearch) intent()        {}
func (SortPlaylistTracks) intent() {}

// Parse builds an intent from its name. arg carries the payload of intents
// that take one: the playlist id, the search query or the sort order.
func Parse(name, arg string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "refresh-token":
		return RefreshToken{}, nil
	case "refresh-playback":
		return RefreshPlayback{}, nil
	case "next":
		return NextTrack{}, nil
	case "previous":
		return PreviousTrack{}, nil
	case "resume-pause":
		return ResumePause{}, nil
	case "shuffle":
		return Shuffle{}, nil
	case "repeat":
		return Repeat{}, nil
	case "quit":
		return Quit{}, nil
	case "select-next":
		return SelectNext{}, nil
	case "select-previous":
		return SelectPrevious{}, nil
	case "play-selected":
		return PlaySelectedTrack{}, nil
	case "clear-search":
		return ClearSearch{}, nil
	case "load-playlist":
		if strings.TrimSpace(arg) == "" {
			return nil, fmt.Errorf("load-playlist requires a playlist id")
		}
		return LoadPlaylist{ID: strings.TrimSpace(arg)}, nil
	case "search":
		return SearchInContext{Query: arg}, nil
	case "sort":
		order, err := state.ParseSortOrder(arg)
		if err != nil {
			return nil, err
		}
		return SortPlaylistTracks{Order: order}, nil
	default:
		return nil, fmt.Errorf("unknown intent %q", name)
	}
}
