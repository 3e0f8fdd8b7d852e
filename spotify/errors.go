//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Error kinds returned by the gateway and the dispatcher.
//

package spotify

import (
	"errors"
	"fmt"
	"net"
	"net/url"

	spotifyLib "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// Error kinds. Match them with errors.Is.
var (
	ErrAuthFailure     = errors.New("no credential could be obtained")
	ErrNoActiveContext = errors.New("no active playback context")
	ErrRemoteCall      = errors.New("remote call failed")
	ErrNetwork         = errors.New("network failure")
)

// Op names the operation that failed.
type Op string

const (
	OpRefreshToken        Op = "refresh token"
	OpFetchPlayback       Op = "fetch current playback"
	OpFetchPlaylist       Op = "fetch playlist"
	OpFetchPlaylistTracks Op = "fetch playlist tracks"
	OpListPlaylists       Op = "list playlists"
	OpListDevices         Op = "list devices"
	OpCurrentUser         Op = "get current user"
	OpStartPlayback       Op = "start playback"
	OpResume              Op = "resume playback"
	OpPause               Op = "pause playback"
	OpNext                Op = "skip to next track"
	OpPrevious            Op = "skip to previous track"
	OpShuffle             Op = "set shuffle"
	OpRepeat              Op = "set repeat"
	OpTransferPlayback    Op = "transfer playback"
	OpResumePause         Op = "toggle playback"
)

// Error carries the kind of failure, the operation and the underlying error.
type Error struct {
	Kind error
	Op   Op
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error against its kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// NoActiveContext reports that op needed a playback context and none is known.
func NoActiveContext(op Op) error {
	return &Error{Kind: ErrNoActiveContext, Op: op}
}

// AuthFailure reports that op could not obtain a credential.
func AuthFailure(op Op, err error) error {
	return &Error{Kind: ErrAuthFailure, Op: op, Err: err}
}

// mapError converts an error from the Spotify client into an *Error.
// API error messages are kept verbatim.
func mapError(op Op, err error) error {
	if err == nil {
		return nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &Error{Kind: ErrAuthFailure, Op: op, Err: err}
	}

	var apiErr spotifyLib.Error
	if errors.As(err, &apiErr) {
		return &Error{Kind: ErrRemoteCall, Op: op, Err: err}
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &Error{Kind: ErrNetwork, Op: op, Err: err}
	}

	return &Error{Kind: ErrRemoteCall, Op: op, Err: err}
}
