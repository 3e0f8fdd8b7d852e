//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Entry point for spotify-player. Authenticates, then either
// prints a listing or runs the player loop with the HTTP remote control.
//

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cloudmanic/spotify-player/config"
	"github.com/cloudmanic/spotify-player/control"
	"github.com/cloudmanic/spotify-player/event"
	"github.com/cloudmanic/spotify-player/server"
	"github.com/cloudmanic/spotify-player/spotify"
	"github.com/cloudmanic/spotify-player/state"
)

// main is the entry point for the application.
func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line flags
	configPath := flag.StringP("config", "c", "", "Path to a config.toml file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	listDevices := flag.Bool("devices", false, "List available Spotify Connect devices and exit")
	listPlaylists := flag.Bool("playlists", false, "List your Spotify playlists and exit")
	showStatus := flag.Bool("status", false, "Print the current playback status and exit")
	deviceFlag := flag.StringP("device", "d", "", "Device name or ID to move playback to")
	playlistFlag := flag.StringP("playlist", "p", "", "Playlist name, ID or URL to load")
	noServer := flag.Bool("no-server", false, "Do not start the HTTP API")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", zap.Error(err))
		return 1
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", zap.Error(err))
		return 1
	}

	// Flags take priority over the config file and env vars
	if *deviceFlag != "" {
		cfg.Device = *deviceFlag
	}
	playlistInput := *playlistFlag
	if playlistInput == "" {
		playlistInput = os.Getenv("SPOTIFY_PLAYLIST_ID")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auth := spotify.NewAuth(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURI, cfg.TokenFile, logger)
	gateway := spotify.NewGateway(nil, auth, logger)

	if err := login(ctx, auth, gateway, logger); err != nil {
		logger.Error("authentication failed", zap.Error(err))
		return 1
	}

	switch {
	case *listPlaylists:
		playlists, err := gateway.ListPlaylists(ctx)
		if err != nil {
			logger.Error("failed to get playlists", zap.Error(err))
			return 1
		}
		logger.Debug("raw playlist data", zap.Any("playlists", playlists))
		printPlaylistsTable(os.Stdout, playlists)
		return 0

	case *listDevices:
		devices, err := gateway.ListDevices(ctx)
		if err != nil {
			logger.Error("failed to get devices", zap.Error(err))
			return 1
		}
		logger.Debug("raw device data", zap.Any("devices", devices))
		printDevicesTable(os.Stdout, devices)
		return 0
	}

	if cfg.Device != "" {
		if _, err := transferToDevice(ctx, gateway, cfg.Device, logger); err != nil {
			logger.Error("failed to select device", zap.Error(err))
			return 1
		}
	}

	var playlistID string
	if playlistInput != "" {
		playlistID, err = gateway.ResolvePlaylistID(ctx, playlistInput)
		if err != nil {
			logger.Error("failed to resolve playlist", zap.String("playlist", playlistInput), zap.Error(err))
			return 1
		}
	}

	store := state.NewStore()
	queue := event.NewQueue(cfg.QueueSize)
	dispatcher := control.NewDispatcher(gateway, store, logger, control.WithSearchTrigger(cfg.SearchTrigger))
	refresher := control.NewRefresher(gateway, store, cfg.PlaybackRefreshInterval)
	watcher := control.NewWatcher(dispatcher, refresher, queue, store, logger)

	if *showStatus {
		return status(ctx, watcher, dispatcher, store, playlistID, logger)
	}

	if playlistID != "" {
		if _, err := queue.Push(ctx, event.LoadPlaylist{ID: playlistID}); err != nil {
			logger.Error("failed to queue playlist", zap.Error(err))
			return 1
		}
	}

	serverCtx, stopServer := context.WithCancel(ctx)
	serverDone := make(chan error, 1)
	switch {
	case *noServer:
		close(serverDone)
	case !cfg.HasAPIAccessToken():
		logger.Warn("API_ACCESS_TOKEN is not set, the HTTP API is disabled")
		close(serverDone)
	default:
		srv := server.New(queue, store, gateway, auth, cfg.APIAccessToken, logger)
		go func() {
			serverDone <- srv.ListenAndServe(serverCtx, cfg.Addr())
		}()
	}

	err = watcher.Run(ctx)
	stopServer()
	if serverErr := <-serverDone; serverErr != nil {
		logger.Error("API server failed", zap.Error(serverErr))
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		logger.Info("interrupted, shutting down")
		return 0
	default:
		logger.Error("player stopped", zap.Error(err))
		return 1
	}
}

// newLogger builds a production logger, or a development one with debug output.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// login loads the saved token, or runs the browser flow when there is none,
// and checks it by fetching the current user. A rejected token triggers one
// re-authentication.
func login(ctx context.Context, auth *spotify.Auth, gateway *spotify.Gateway, logger *zap.Logger) error {
	if _, err := auth.LoadToken(); err != nil {
		logger.Info("no saved token, starting authentication", zap.Error(err))
		if _, err := auth.Authenticate(ctx); err != nil {
			return err
		}
	}

	user, err := verify(ctx, gateway)
	if err != nil {
		logger.Warn("token may be expired, re-authenticating", zap.Error(err))
		if _, err := auth.Authenticate(ctx); err != nil {
			return err
		}
		if user, err = verify(ctx, gateway); err != nil {
			return fmt.Errorf("failed to get user info: %w", err)
		}
	}

	logger.Info("authenticated", zap.String("user", user))
	return nil
}

func verify(ctx context.Context, gateway *spotify.Gateway) (string, error) {
	if _, err := gateway.RefreshCredential(ctx); err != nil {
		return "", err
	}
	return gateway.CurrentUser(ctx)
}

// status runs the startup fetches, loads playlistID when set and prints the
// resulting state.
func status(ctx context.Context, watcher *control.Watcher, dispatcher *control.Dispatcher, store *state.Store, playlistID string, logger *zap.Logger) int {
	if err := watcher.Startup(ctx); err != nil {
		logger.Error("failed to fetch playback", zap.Error(err))
		return 1
	}
	if playlistID != "" {
		if err := dispatcher.Dispatch(ctx, event.LoadPlaylist{ID: playlistID}); err != nil {
			logger.Error("failed to load playlist", zap.String("playlist_id", playlistID), zap.Error(err))
			return 1
		}
	}
	printStatus(os.Stdout, store.Snapshot(), time.Now())
	return 0
}
