//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Playlist id resolution from URLs, URIs, ids and names.
//

package spotify

import (
	"context"
	"strings"
)

const playlistIDLength = 22

// ExtractPlaylistID extracts the playlist ID from a Spotify URL or URI, or
// returns the input as-is if it's already just an ID.
func ExtractPlaylistID(input string) string {
	input = strings.TrimSpace(input)

	// If it's a full URL like https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=xxx
	if strings.Contains(input, "spotify.com/playlist/") {
		parts := strings.Split(input, "/playlist/")
		if len(parts) > 1 {
			// Remove any query parameters
			return strings.Split(parts[1], "?")[0]
		}
	}

	if id, ok := strings.CutPrefix(input, "spotify:playlist:"); ok {
		return id
	}

	// Already just an ID
	return input
}

// looksLikePlaylistID reports whether input has the shape of a Spotify id:
// 22 characters without spaces.
func looksLikePlaylistID(input string) bool {
	return len(input) == playlistIDLength && !strings.Contains(input, " ")
}

// ResolvePlaylistID resolves a playlist input (URL, URI, name, or ID) to a
// playlist ID. It first checks for a URL or URI, then an id-shaped string, then
// searches the user's playlists by name, and finally assumes it's an ID if no
// match is found.
func (g *Gateway) ResolvePlaylistID(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)

	if strings.Contains(input, "spotify.com/playlist/") || strings.HasPrefix(input, "spotify:playlist:") {
		return ExtractPlaylistID(input), nil
	}

	if looksLikePlaylistID(input) {
		return input, nil
	}

	playlists, err := g.ListPlaylists(ctx)
	if err != nil {
		return "", err
	}

	for _, playlist := range playlists {
		if strings.EqualFold(playlist.Name, input) || playlist.ID == input {
			return playlist.ID, nil
		}
	}

	g.logger.Debug("no playlist matched by name, using input as id")
	return input, nil
}
