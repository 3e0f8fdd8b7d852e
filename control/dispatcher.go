//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Dispatcher applies intents to the application state and the
// remote playback service, one at a time.
//

package control

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cloudmanic/spotify-player/event"
	"github.com/cloudmanic/spotify-player/spotify"
	"github.com/cloudmanic/spotify-player/state"
)

// DefaultSearchTrigger is the character a query must start with to filter
// the displayed tracks.
const DefaultSearchTrigger = "/"

// Gateway is the remote playback service as the dispatcher sees it.
type Gateway interface {
	RefreshCredential(ctx context.Context) (time.Time, error)
	FetchCurrentPlayback(ctx context.Context) (*spotify.PlaybackContext, error)
	FetchPlaylist(ctx context.Context, id string) (*spotify.Playlist, error)
	FetchPlaylistTracksPage(ctx context.Context, cursor spotify.PageCursor) ([]spotify.PlaylistItem, *spotify.PageCursor, error)
	StartPlayback(ctx context.Context, contextURI, trackURI string) error
	Resume(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	SetShuffle(ctx context.Context, shuffle bool) error
	SetRepeat(ctx context.Context, mode spotify.RepeatMode) error
}

var _ Gateway = (*spotify.Gateway)(nil)

// Dispatcher serializes intent handling. Network calls are never made while
// the store's lock is held.
type Dispatcher struct {
	mu            sync.Mutex
	gateway       Gateway
	store         *state.Store
	logger        *zap.Logger
	searchTrigger string
	now           func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSearchTrigger sets the prefix that marks a query as a track filter.
func WithSearchTrigger(trigger string) Option {
	return func(d *Dispatcher) {
		if trigger != "" {
			d.searchTrigger = trigger
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher builds a Dispatcher over gateway and store.
func NewDispatcher(gateway Gateway, store *state.Store, logger *zap.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		gateway:       gateway,
		store:         store,
		logger:        logger,
		searchTrigger: DefaultSearchTrigger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch handles one intent. Failures are returned to the caller and
// recorded as the state's LastError; they never leave a partial write.
// Loading the playlist that is already loaded leaves the state untouched,
// LastError included.
func (d *Dispatcher) Dispatch(ctx context.Context, intent event.Intent) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if in, ok := intent.(event.LoadPlaylist); ok && d.playlistLoaded(in.ID) {
		d.logger.Debug("playlist already loaded", zap.String("playlist_id", in.ID))
		return nil
	}

	err := d.handle(ctx, intent)
	d.recordResult(err)
	return err
}

func (d *Dispatcher) recordResult(err error) {
	var hadError bool
	d.store.View(func(s state.State) { hadError = s.LastError != nil })
	if err == nil && !hadError {
		return
	}
	d.store.Update(func(s *state.State) { s.LastError = err })
}

func (d *Dispatcher) handle(ctx context.Context, intent event.Intent) error {
	d.logger.Debug("handle intent", zap.String("intent", intent.Name()))

	switch in := intent.(type) {
	case event.RefreshToken:
		return d.refreshToken(ctx)
	case event.RefreshPlayback:
		return refreshPlayback(ctx, d.gateway, d.store, d.now)
	case event.NextTrack:
		return d.gateway.Next(ctx)
	case event.PreviousTrack:
		return d.gateway.Previous(ctx)
	case event.ResumePause:
		return d.resumePause(ctx)
	case event.Shuffle:
		return d.toggleShuffle(ctx)
	case event.Repeat:
		return d.cycleRepeat(ctx)
	case event.Quit:
		d.store.Update(func(s *state.State) { s.IsRunning = false })
		return nil
	case event.LoadPlaylist:
		return d.loadPlaylist(ctx, in.ID)
	case event.SelectNext:
		d.store.Update(func(s *state.State) { s.MoveSelection(1) })
		return nil
	case event.SelectPrevious:
		d.store.Update(func(s *state.State) { s.MoveSelection(-1) })
		return nil
	case event.PlaySelectedTrack:
		return d.playSelectedTrack(ctx)
	case event.SearchInContext:
		d.searchInContext(in.Query)
		return nil
	case event.ClearSearch:
		d.store.Update(func(s *state.State) { s.ClearSearch() })
		return nil
	case event.SortPlaylistTracks:
		d.store.Update(func(s *state.State) { s.SortPlaylistTracks(in.Order, d.searchTrigger) })
		return nil
	default:
		return fmt.Errorf("unsupported intent %T", intent)
	}
}

func (d *Dispatcher) refreshToken(ctx context.Context) error {
	expiresAt, err := d.gateway.RefreshCredential(ctx)
	if err != nil {
		return err
	}
	d.store.Update(func(s *state.State) { s.AuthTokenExpiry = expiresAt })
	return nil
}

// playback returns a copy of the current playback context, if any.
func (d *Dispatcher) playback() (spotify.PlaybackContext, bool) {
	var pc spotify.PlaybackContext
	var ok bool
	d.store.View(func(s state.State) {
		if s.PlaybackContext != nil {
			pc, ok = *s.PlaybackContext, true
		}
	})
	return pc, ok
}

func (d *Dispatcher) resumePause(ctx context.Context) error {
	pc, ok := d.playback()
	if !ok {
		return spotify.NoActiveContext(spotify.OpResumePause)
	}
	if pc.IsPlaying {
		return d.gateway.Pause(ctx)
	}
	return d.gateway.Resume(ctx)
}

func (d *Dispatcher) toggleShuffle(ctx context.Context) error {
	pc, ok := d.playback()
	if !ok {
		return spotify.NoActiveContext(spotify.OpShuffle)
	}
	return d.gateway.SetShuffle(ctx, !pc.Shuffle)
}

func (d *Dispatcher) cycleRepeat(ctx context.Context) error {
	pc, ok := d.playback()
	if !ok {
		return spotify.NoActiveContext(spotify.OpRepeat)
	}
	return d.gateway.SetRepeat(ctx, pc.Repeat.Next())
}

// loadPlaylist fetches the playlist and every page of its tracks before
// writing anything, so a failure on any page leaves the state as it was.
func (d *Dispatcher) loadPlaylist(ctx context.Context, id string) error {
	playlist, err := d.gateway.FetchPlaylist(ctx, id)
	if err != nil {
		return err
	}

	var tracks []spotify.Track
	cursor := &spotify.PageCursor{PlaylistID: id}
	for pages := 0; cursor != nil; pages++ {
		items, next, err := d.gateway.FetchPlaylistTracksPage(ctx, *cursor)
		if err != nil {
			return fmt.Errorf("load playlist %s page %d: %w", id, pages+1, err)
		}
		for _, item := range items {
			// unavailable or deleted tracks have no data
			if item.Track == nil {
				continue
			}
			track := *item.Track
			track.AddedAt = item.AddedAt
			tracks = append(tracks, track)
		}
		cursor = next
	}

	d.store.Update(func(s *state.State) { s.SetPlaylist(playlist, tracks) })
	d.logger.Info("playlist loaded",
		zap.String("playlist_id", id),
		zap.String("name", playlist.Name),
		zap.Int("tracks", len(tracks)))
	return nil
}

func (d *Dispatcher) playlistLoaded(id string) bool {
	var loaded bool
	d.store.View(func(s state.State) { loaded = s.Playlist != nil && s.Playlist.ID == id })
	return loaded
}

func (d *Dispatcher) playSelectedTrack(ctx context.Context) error {
	var contextURI, trackURI string
	d.store.View(func(s state.State) {
		track, ok := s.SelectedTrack()
		if !ok || !s.PlaybackContext.HasContextURI() {
			return
		}
		contextURI, trackURI = s.PlaybackContext.ContextURI, track.URI
	})
	if contextURI == "" || trackURI == "" {
		return nil
	}
	return d.gateway.StartPlayback(ctx, contextURI, trackURI)
}

func (d *Dispatcher) searchInContext(query string) {
	d.store.Update(func(s *state.State) {
		if s.ApplySearch(query, d.searchTrigger) {
			d.logger.Debug("search in context",
				zap.String("query", query),
				zap.Int("matches", len(s.Search.Tracks)))
		}
	})
}

// refreshPlayback overwrites the playback context with a fresh fetch.
func refreshPlayback(ctx context.Context, gateway PlaybackFetcher, store *state.Store, now func() time.Time) error {
	pc, err := gateway.FetchCurrentPlayback(ctx)
	if err != nil {
		return err
	}
	store.Update(func(s *state.State) {
		s.PlaybackContext = pc
		s.LastRefreshed = now()
	})
	return nil
}
