//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Watcher is the player's main loop. It drains the intent queue
// and runs the periodic refresh until the user quits.
//

package control

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cloudmanic/spotify-player/event"
	"github.com/cloudmanic/spotify-player/state"
)

const defaultTick = 200 * time.Millisecond

// Watcher interleaves intent dispatch with the playback refresh.
type Watcher struct {
	dispatcher *Dispatcher
	refresher  *Refresher
	queue      *event.Queue
	store      *state.Store
	logger     *zap.Logger
	tick       time.Duration

	// last automatic token renewal attempt; renewals are spaced by the
	// refresh interval
	tokenAttempt time.Time
}

// NewWatcher builds a Watcher. The refresh timer is checked every tick,
// which is capped by the refresher's interval.
func NewWatcher(dispatcher *Dispatcher, refresher *Refresher, queue *event.Queue, store *state.Store, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	tick := defaultTick
	if refresher.Interval() < tick {
		tick = refresher.Interval()
	}
	return &Watcher{
		dispatcher: dispatcher,
		refresher:  refresher,
		queue:      queue,
		store:      store,
		logger:     logger,
		tick:       tick,
	}
}

// Startup obtains the initial credential and playback context. The player
// cannot proceed without them.
func (w *Watcher) Startup(ctx context.Context) error {
	if err := w.dispatcher.Dispatch(ctx, event.RefreshToken{}); err != nil {
		return fmt.Errorf("initial token refresh: %w", err)
	}
	if err := w.refresher.Refresh(ctx); err != nil {
		return fmt.Errorf("initial playback fetch: %w", err)
	}
	return nil
}

// Run performs Startup and then loops until Quit is dispatched, returning
// nil, or ctx is cancelled, returning its error. Failures of individual
// intents are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Startup(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for w.store.IsRunning() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-w.queue.C():
			w.handle(ctx, env)
			if w.store.IsRunning() {
				w.refreshIfDue(ctx, time.Now())
			}
		case now := <-ticker.C:
			w.refreshIfDue(ctx, now)
		}
	}

	w.logger.Info("player stopped")
	return nil
}

// Step runs one loop iteration at time now: at most one pending intent, then
// the refresh check. A step with nothing queued only does the refresh check.
// It does nothing once the player has quit.
func (w *Watcher) Step(ctx context.Context, now time.Time) {
	if !w.store.IsRunning() {
		return
	}
	if env, ok := w.queue.TryPop(); ok {
		w.handle(ctx, env)
	}
	if !w.store.IsRunning() {
		return
	}
	w.refreshIfDue(ctx, now)
}

func (w *Watcher) handle(ctx context.Context, env event.Envelope) {
	start := time.Now()
	err := w.dispatcher.Dispatch(ctx, env.Intent)

	fields := []zap.Field{
		zap.String("intent", env.Intent.Name()),
		zap.String("intent_id", env.ID.String()),
		zap.Duration("queued", start.Sub(env.QueuedAt)),
		zap.Duration("took", time.Since(start)),
	}
	if err != nil {
		w.logger.Error("intent failed", append(fields, zap.Error(err))...)
		return
	}
	w.logger.Debug("intent handled", fields...)
}

func (w *Watcher) refreshIfDue(ctx context.Context, now time.Time) {
	if w.refresher.TokenDue(now) && now.Sub(w.tokenAttempt) >= w.refresher.Interval() {
		w.tokenAttempt = now
		w.logger.Info("refresh the auth token...")
		if err := w.dispatcher.Dispatch(ctx, event.RefreshToken{}); err != nil {
			w.logger.Error("token refresh failed", zap.Error(err))
		}
	}

	refreshed, err := w.refresher.Tick(ctx, now)
	if err != nil {
		w.logger.Warn("playback refresh failed", zap.Error(err))
		return
	}
	if refreshed {
		w.logger.Debug("playback context refreshed")
	}
}
