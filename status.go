//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Player status display functions.
//

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"

	"github.com/cloudmanic/spotify-player/state"
)

const (
	trackColumnWidth = 60
	statusTrackLimit = 25
)

// printStatus displays the playback context and the displayed track list.
func printStatus(w io.Writer, s state.State, now time.Time) {
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "🎵 Player Status")
	fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	for _, row := range statusRows(s, now) {
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	if s.Playlist == nil {
		return
	}
	fmt.Fprintln(w)
	printTracksTable(w, s)
}

func statusRows(s state.State, now time.Time) []table.Row {
	bold := color.New(color.Bold)
	var rows []table.Row

	pc := s.PlaybackContext
	if pc == nil {
		rows = append(rows, table.Row{"Playback", color.HiBlackString("Nothing playing")})
	} else {
		playing := color.YellowString("⏸ Paused")
		if pc.IsPlaying {
			playing = color.GreenString("▶ Playing")
		}
		rows = append(rows, table.Row{"Playback", playing})

		if pc.Track != nil {
			rows = append(rows,
				table.Row{"Track", bold.Sprint(runewidth.Truncate(pc.Track.Description(), trackColumnWidth, "…"))},
				table.Row{"Progress", fmt.Sprintf("%s / %s", formatDuration(pc.Progress), formatDuration(pc.Track.Duration))},
			)
		}
		if pc.Device.Name != "" {
			rows = append(rows, table.Row{"Device", fmt.Sprintf("%s (%s)", pc.Device.Name, pc.Device.Type)})
		}
		if pc.HasContextURI() {
			rows = append(rows, table.Row{"Context", color.HiBlackString(pc.ContextURI)})
		}
		rows = append(rows,
			table.Row{"Shuffle", onOff(pc.Shuffle)},
			table.Row{"Repeat", string(pc.Repeat)},
		)
	}

	if s.Playlist != nil {
		rows = append(rows, table.Row{"Playlist", fmt.Sprintf("%s (%s tracks)",
			bold.Sprint(s.Playlist.Name), humanize.Comma(int64(len(s.PlaylistTracks))))})
	}
	if s.Search.Query != nil {
		rows = append(rows, table.Row{"Search", fmt.Sprintf("%q (%d matches)", *s.Search.Query, len(s.Search.Tracks))})
	}
	if !s.AuthTokenExpiry.IsZero() {
		rows = append(rows, table.Row{"Token renewal", humanize.RelTime(s.AuthTokenExpiry, now, "ago", "from now")})
	}
	if !s.LastRefreshed.IsZero() {
		rows = append(rows, table.Row{"Refreshed", humanize.RelTime(s.LastRefreshed, now, "ago", "from now")})
	}
	if s.LastError != nil {
		rows = append(rows, table.Row{"Last error", color.RedString(s.LastError.Error())})
	}
	return rows
}

// printTracksTable displays the displayed track list around the selection.
func printTracksTable(w io.Writer, s state.State) {
	green := color.New(color.FgGreen, color.Bold)

	tracks := s.DisplayedTracks()
	start := 0
	if s.Selection != nil && *s.Selection >= statusTrackLimit {
		start = *s.Selection - statusTrackLimit/2
	}
	end := min(start+statusTrackLimit, len(tracks))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"", "#", "Track", "Duration"})

	for i := start; i < end; i++ {
		marker := ""
		name := runewidth.Truncate(tracks[i].Description(), trackColumnWidth, "…")
		if s.Selection != nil && *s.Selection == i {
			marker = color.GreenString("▶")
			name = color.New(color.Bold).Sprint(name)
		}
		t.AppendRow(table.Row{marker, i + 1, name, formatDuration(tracks[i].Duration)})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintln(w)
	green.Fprintf(w, "Showing %d-%d of %d tracks\n", min(start+1, end), end, len(tracks))
}

// formatDuration formats d as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func onOff(b bool) string {
	if b {
		return color.GreenString("on")
	}
	return "off"
}
