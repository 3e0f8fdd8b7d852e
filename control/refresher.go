//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Refresher re-polls the live playback context on a fixed
// interval and tells when the credential is due for renewal.
//

package control

import (
	"context"
	"time"

	"github.com/cloudmanic/spotify-player/spotify"
	"github.com/cloudmanic/spotify-player/state"
)

// DefaultRefreshInterval is how often the playback context is re-polled.
const DefaultRefreshInterval = time.Second

// PlaybackFetcher fetches the live playback snapshot.
type PlaybackFetcher interface {
	FetchCurrentPlayback(ctx context.Context) (*spotify.PlaybackContext, error)
}

// Refresher keeps the playback context in the store fresh.
type Refresher struct {
	fetcher  PlaybackFetcher
	store    *state.Store
	interval time.Duration
	now      func() time.Time
}

// NewRefresher builds a Refresher. A non-positive interval uses
// DefaultRefreshInterval.
func NewRefresher(fetcher PlaybackFetcher, store *state.Store, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{fetcher: fetcher, store: store, interval: interval, now: time.Now}
}

// Interval returns the refresh interval.
func (r *Refresher) Interval() time.Duration {
	return r.interval
}

// Due reports whether the interval has elapsed since the last refresh.
func (r *Refresher) Due(now time.Time) bool {
	var last time.Time
	r.store.View(func(s state.State) { last = s.LastRefreshed })
	return now.Sub(last) >= r.interval
}

// TokenDue reports whether the credential has reached its renewal time.
func (r *Refresher) TokenDue(now time.Time) bool {
	var expiry time.Time
	r.store.View(func(s state.State) { expiry = s.AuthTokenExpiry })
	return !now.Before(expiry)
}

// Refresh fetches the playback context and overwrites it in the store. A
// failed fetch keeps the previous context but still restarts the interval.
func (r *Refresher) Refresh(ctx context.Context) error {
	err := refreshPlayback(ctx, r.fetcher, r.store, r.now)
	if err != nil {
		r.store.Update(func(s *state.State) {
			s.LastRefreshed = r.now()
			s.LastError = err
		})
	}
	return err
}

// Tick refreshes when due. It does nothing once the player has quit.
func (r *Refresher) Tick(ctx context.Context, now time.Time) (bool, error) {
	if !r.store.IsRunning() || !r.Due(now) {
		return false, nil
	}
	return true, r.Refresh(ctx)
}
