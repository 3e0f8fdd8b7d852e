//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Gateway issues authenticated calls against the Spotify Web API
// and maps its responses into player values.
//

package spotify

import (
	"context"
	"errors"
	"sync"
	"time"

	spotifyLib "github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	// TokenExpiryMargin is subtracted from a token's hard expiry so it is
	// renewed slightly early.
	TokenExpiryMargin = 10 * time.Second

	playlistPageLimit     = 100
	userPlaylistPageLimit = 50
)

// TokenRefresher obtains a valid token and a client bound to it.
type TokenRefresher interface {
	Refresh(ctx context.Context) (*oauth2.Token, API, error)
}

// Gateway is a stateless request issuer. The only thing it holds is the
// client for the current credential; it never caches playback or catalog data.
type Gateway struct {
	mu     sync.RWMutex
	api    API
	tokens TokenRefresher
	logger *zap.Logger
}

// NewGateway builds a Gateway. api may be nil until the first RefreshCredential.
func NewGateway(api API, tokens TokenRefresher, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{api: api, tokens: tokens, logger: logger}
}

func (g *Gateway) client(op Op) (API, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.api == nil {
		return nil, AuthFailure(op, errors.New("spotify not authenticated"))
	}
	return g.api, nil
}

// RefreshCredential obtains a new bearer credential and returns the time it
// should be renewed at, which is TokenExpiryMargin before its hard expiry.
func (g *Gateway) RefreshCredential(ctx context.Context) (time.Time, error) {
	if g.tokens == nil {
		return time.Time{}, AuthFailure(OpRefreshToken, errors.New("no token source configured"))
	}

	tok, api, err := g.tokens.Refresh(ctx)
	if err != nil {
		return time.Time{}, AuthFailure(OpRefreshToken, err)
	}
	if tok == nil || api == nil {
		return time.Time{}, AuthFailure(OpRefreshToken, errors.New("no token returned"))
	}
	if tok.Expiry.IsZero() {
		return time.Time{}, AuthFailure(OpRefreshToken, errors.New("token has no expiry"))
	}

	g.mu.Lock()
	g.api = api
	g.mu.Unlock()

	expiresAt := tok.Expiry.Add(-TokenExpiryMargin)
	g.logger.Debug("token refreshed", zap.Time("expires_at", expiresAt))
	return expiresAt, nil
}

// FetchCurrentPlayback returns the live playback snapshot, or nil when
// nothing is playing on any device.
func (g *Gateway) FetchCurrentPlayback(ctx context.Context) (*PlaybackContext, error) {
	api, err := g.client(OpFetchPlayback)
	if err != nil {
		return nil, err
	}
	ps, err := api.PlayerState(ctx)
	if err != nil {
		return nil, mapError(OpFetchPlayback, err)
	}
	return toPlaybackContext(ps), nil
}

// FetchPlaylist returns a playlist's metadata.
func (g *Gateway) FetchPlaylist(ctx context.Context, id string) (*Playlist, error) {
	api, err := g.client(OpFetchPlaylist)
	if err != nil {
		return nil, err
	}
	full, err := api.GetPlaylist(ctx, spotifyLib.ID(id))
	if err != nil {
		return nil, mapError(OpFetchPlaylist, err)
	}
	return toPlaylist(full), nil
}

// FetchPlaylistTracksPage returns one page of a playlist's items and the
// cursor of the following page, which is nil once the list is exhausted.
func (g *Gateway) FetchPlaylistTracksPage(ctx context.Context, cursor PageCursor) ([]PlaylistItem, *PageCursor, error) {
	api, err := g.client(OpFetchPlaylistTracks)
	if err != nil {
		return nil, nil, err
	}
	page, err := api.GetPlaylistItems(ctx, spotifyLib.ID(cursor.PlaylistID),
		spotifyLib.Limit(playlistPageLimit), spotifyLib.Offset(cursor.Offset))
	if err != nil {
		return nil, nil, mapError(OpFetchPlaylistTracks, err)
	}

	items := make([]PlaylistItem, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toPlaylistItem(item))
	}

	var next *PageCursor
	if page.Next != "" && len(page.Items) > 0 {
		next = &PageCursor{PlaylistID: cursor.PlaylistID, Offset: cursor.Offset + len(page.Items)}
	}
	return items, next, nil
}

// StartPlayback plays trackURI within the context identified by contextURI.
func (g *Gateway) StartPlayback(ctx context.Context, contextURI, trackURI string) error {
	api, err := g.client(OpStartPlayback)
	if err != nil {
		return err
	}
	playbackContext := spotifyLib.URI(contextURI)
	opts := &spotifyLib.PlayOptions{
		PlaybackContext: &playbackContext,
		PlaybackOffset:  &spotifyLib.PlaybackOffset{URI: spotifyLib.URI(trackURI)},
	}
	return mapError(OpStartPlayback, api.PlayOpt(ctx, opts))
}

// Resume resumes the paused playback.
func (g *Gateway) Resume(ctx context.Context) error {
	api, err := g.client(OpResume)
	if err != nil {
		return err
	}
	return mapError(OpResume, api.Play(ctx))
}

// Pause pauses the current playback.
func (g *Gateway) Pause(ctx context.Context) error {
	api, err := g.client(OpPause)
	if err != nil {
		return err
	}
	return mapError(OpPause, api.Pause(ctx))
}

// Next skips to the next track.
func (g *Gateway) Next(ctx context.Context) error {
	api, err := g.client(OpNext)
	if err != nil {
		return err
	}
	return mapError(OpNext, api.Next(ctx))
}

// Previous skips to the previous track.
func (g *Gateway) Previous(ctx context.Context) error {
	api, err := g.client(OpPrevious)
	if err != nil {
		return err
	}
	return mapError(OpPrevious, api.Previous(ctx))
}

// SetShuffle turns shuffle on or off.
func (g *Gateway) SetShuffle(ctx context.Context, shuffle bool) error {
	api, err := g.client(OpShuffle)
	if err != nil {
		return err
	}
	return mapError(OpShuffle, api.Shuffle(ctx, shuffle))
}

// SetRepeat sets the repeat mode.
func (g *Gateway) SetRepeat(ctx context.Context, mode RepeatMode) error {
	api, err := g.client(OpRepeat)
	if err != nil {
		return err
	}
	return mapError(OpRepeat, api.Repeat(ctx, string(mode)))
}

// TransferPlayback moves playback to the given device.
func (g *Gateway) TransferPlayback(ctx context.Context, deviceID string, play bool) error {
	api, err := g.client(OpTransferPlayback)
	if err != nil {
		return err
	}
	return mapError(OpTransferPlayback, api.TransferPlayback(ctx, spotifyLib.ID(deviceID), play))
}

// CurrentUser returns the authenticated user's display name.
func (g *Gateway) CurrentUser(ctx context.Context) (string, error) {
	api, err := g.client(OpCurrentUser)
	if err != nil {
		return "", err
	}
	user, err := api.CurrentUser(ctx)
	if err != nil {
		return "", mapError(OpCurrentUser, err)
	}
	return user.DisplayName, nil
}

// ListDevices returns the available Spotify Connect devices.
func (g *Gateway) ListDevices(ctx context.Context) ([]Device, error) {
	api, err := g.client(OpListDevices)
	if err != nil {
		return nil, err
	}
	devices, err := api.PlayerDevices(ctx)
	if err != nil {
		return nil, mapError(OpListDevices, err)
	}
	result := make([]Device, 0, len(devices))
	for _, device := range devices {
		result = append(result, toDevice(device))
	}
	return result, nil
}

// ListPlaylists returns all of the current user's playlists.
func (g *Gateway) ListPlaylists(ctx context.Context) ([]Playlist, error) {
	api, err := g.client(OpListPlaylists)
	if err != nil {
		return nil, err
	}

	var all []Playlist
	offset := 0

	for {
		page, err := api.CurrentUsersPlaylists(ctx, spotifyLib.Limit(userPlaylistPageLimit), spotifyLib.Offset(offset))
		if err != nil {
			return nil, mapError(OpListPlaylists, err)
		}

		for _, playlist := range page.Playlists {
			all = append(all, toSimplePlaylist(playlist))
		}

		// Check if there are more playlists to fetch
		if len(page.Playlists) < userPlaylistPageLimit {
			break
		}
		offset += userPlaylistPageLimit
	}

	return all, nil
}
