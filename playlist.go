//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Playlist display functions.
//

package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"

	"github.com/cloudmanic/spotify-player/spotify"
)

const nameColumnWidth = 48

// printPlaylistsTable displays the user's Spotify playlists in a formatted table.
func printPlaylistsTable(w io.Writer, playlists []spotify.Playlist) {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "🎵 Your Spotify Playlists")
	fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Name", "Tracks", "Owner", "Playlist ID"})

	var tracks int
	for i, playlist := range playlists {
		tracks += playlist.TrackTotal
		t.AppendRow(table.Row{
			i + 1,
			color.New(color.Bold).Sprint(runewidth.Truncate(playlist.Name, nameColumnWidth, "…")),
			humanize.Comma(int64(playlist.TrackTotal)),
			playlist.Owner,
			color.HiBlackString(playlist.ID),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintln(w)
	green.Fprintf(w, "Total playlists: %d (%s tracks)\n", len(playlists), humanize.Comma(int64(tracks)))
}
