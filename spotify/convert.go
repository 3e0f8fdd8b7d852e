//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Conversions from Spotify Web API responses to player values.
//

package spotify

import (
	"time"

	spotifyLib "github.com/zmb3/spotify/v2"
)

func toTrack(t *spotifyLib.FullTrack) *Track {
	if t == nil {
		return nil
	}
	artists := make([]string, 0, len(t.Artists))
	for _, artist := range t.Artists {
		artists = append(artists, artist.Name)
	}
	return &Track{
		ID:       string(t.ID),
		URI:      string(t.URI),
		Name:     t.Name,
		Artists:  artists,
		Album:    t.Album.Name,
		Duration: time.Duration(t.Duration) * time.Millisecond,
	}
}

func toDevice(d spotifyLib.PlayerDevice) Device {
	return Device{
		ID:     string(d.ID),
		Name:   d.Name,
		Type:   d.Type,
		Active: d.Active,
	}
}

// toPlaybackContext returns nil for the empty state the API reports when
// nothing is playing.
func toPlaybackContext(ps *spotifyLib.PlayerState) *PlaybackContext {
	if ps == nil || (ps.Device.ID == "" && ps.Item == nil) {
		return nil
	}
	return &PlaybackContext{
		ContextURI:  string(ps.PlaybackContext.URI),
		ContextType: ps.PlaybackContext.Type,
		Device:      toDevice(ps.Device),
		Track:       toTrack(ps.Item),
		IsPlaying:   ps.Playing,
		Shuffle:     ps.ShuffleState,
		Repeat:      ParseRepeatMode(ps.RepeatState),
		Progress:    time.Duration(ps.Progress) * time.Millisecond,
	}
}

func toPlaylist(p *spotifyLib.FullPlaylist) *Playlist {
	if p == nil {
		return nil
	}
	return &Playlist{
		ID:         string(p.ID),
		Name:       p.Name,
		URI:        string(p.URI),
		Owner:      p.Owner.DisplayName,
		TrackTotal: int(p.Tracks.Total),
	}
}

func toSimplePlaylist(p spotifyLib.SimplePlaylist) Playlist {
	return Playlist{
		ID:         string(p.ID),
		Name:       p.Name,
		URI:        string(p.URI),
		Owner:      p.Owner.DisplayName,
		TrackTotal: int(p.Tracks.Total),
	}
}

func toPlaylistItem(item spotifyLib.PlaylistItem) PlaylistItem {
	addedAt, _ := time.Parse(time.RFC3339, item.AddedAt)
	return PlaylistItem{
		AddedAt: addedAt,
		Track:   toTrack(item.Track.Track),
	}
}
