//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Track list filtering and sorting.
//

package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudmanic/spotify-player/spotify"
)

// SortOrder is a playlist track ordering.
type SortOrder string

const (
	SortByAddedAt   SortOrder = "added-at"
	SortByTrackName SortOrder = "track-name"
	SortByAlbum     SortOrder = "album"
	SortByArtists   SortOrder = "artists"
	SortByDuration  SortOrder = "duration"
)

// SortOrders lists every supported order.
var SortOrders = []SortOrder{SortByAddedAt, SortByTrackName, SortByAlbum, SortByArtists, SortByDuration}

// ParseSortOrder validates a sort order name.
func ParseSortOrder(s string) (SortOrder, error) {
	for _, order := range SortOrders {
		if string(order) == strings.ToLower(strings.TrimSpace(s)) {
			return order, nil
		}
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// FilterTracks returns the tracks whose description contains query, ignoring
// case, in their original order.
func FilterTracks(tracks []spotify.Track, query string) []spotify.Track {
	needle := strings.ToLower(query)
	var matches []spotify.Track
	for _, track := range tracks {
		if strings.Contains(strings.ToLower(track.Description()), needle) {
			matches = append(matches, track)
		}
	}
	return matches
}

// SortTracks sorts tracks in place. The sort is stable so equal keys keep
// their playlist order.
func SortTracks(tracks []spotify.Track, order SortOrder) {
	var less func(a, b spotify.Track) bool

	switch order {
	case SortByAddedAt:
		less = func(a, b spotify.Track) bool { return a.AddedAt.Before(b.AddedAt) }
	case SortByTrackName:
		less = func(a, b spotify.Track) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortByAlbum:
		less = func(a, b spotify.Track) bool { return strings.ToLower(a.Album) < strings.ToLower(b.Album) }
	case SortByArtists:
		less = func(a, b spotify.Track) bool {
			return strings.ToLower(a.ArtistNames()) < strings.ToLower(b.ArtistNames())
		}
	case SortByDuration:
		less = func(a, b spotify.Track) bool { return a.Duration < b.Duration }
	default:
		return
	}

	sort.SliceStable(tracks, func(i, j int) bool { return less(tracks[i], tracks[j]) })
}
