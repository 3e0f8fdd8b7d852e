//
// Date: 2026-10-19
// Author: Spicer Matthews <spicer@cloudmanic.com>
// Copyright (c) 2026 Cloudmanic Labs, LLC. All rights reserved.
//
// Description: Configuration loading. Tunables come from a TOML file and
// credentials from the environment or a .env file.
//

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/cloudmanic/spotify-player/control"
	"github.com/cloudmanic/spotify-player/event"
)

const (
	appName = "spotify-player"

	DefaultRedirectURI = "http://127.0.0.1:8080/callback"
	DefaultPort        = "8080"
	defaultTokenFile   = "token.json"
)

// Config is the player configuration.
type Config struct {
	PlaybackRefreshInterval time.Duration `koanf:"playback_refresh_interval"`
	TokenFile               string        `koanf:"token_file"`
	APIPort                 string        `koanf:"api_port"`
	QueueSize               int           `koanf:"queue_size"`
	SearchTrigger           string        `koanf:"search_trigger"`
	Device                  string        `koanf:"device"` // playback is moved here at startup when set

	// from the environment
	ClientID       string `koanf:"-"`
	ClientSecret   string `koanf:"-"`
	RedirectURI    string `koanf:"-"`
	APIAccessToken string `koanf:"-"`
}

// Load reads the configuration. When path is empty the default locations are
// tried in order of priority (last wins); a missing file there is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(expandPath(path)), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		for _, p := range getConfigPaths() {
			if _, err := os.Stat(p); err == nil {
				if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
					return nil, fmt.Errorf("load config %s: %w", p, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()
	cfg.loadEnv()

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadEnv() {
	c.ClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	c.ClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	c.RedirectURI = os.Getenv("SPOTIFY_REDIRECT_URI")
	c.APIAccessToken = os.Getenv("API_ACCESS_TOKEN")

	if port := os.Getenv("PORT"); port != "" {
		c.APIPort = port
	}
	if device := os.Getenv("SPOTIFY_DEVICE_NAME"); device != "" && c.Device == "" {
		c.Device = device
	}
}

func (c *Config) applyDefaults() error {
	if c.PlaybackRefreshInterval <= 0 {
		c.PlaybackRefreshInterval = control.DefaultRefreshInterval
	}
	if c.QueueSize <= 0 {
		c.QueueSize = event.DefaultQueueSize
	}
	if c.SearchTrigger == "" {
		c.SearchTrigger = control.DefaultSearchTrigger
	}
	if c.APIPort == "" {
		c.APIPort = DefaultPort
	}
	if c.RedirectURI == "" {
		c.RedirectURI = DefaultRedirectURI
	}

	if c.TokenFile != "" {
		c.TokenFile = expandPath(c.TokenFile)
		return nil
	}
	tokenFile, err := xdg.DataFile(filepath.Join(appName, defaultTokenFile))
	if err != nil {
		return fmt.Errorf("resolve token file: %w", err)
	}
	c.TokenFile = tokenFile
	return nil
}

// Validate checks that the Spotify credentials are present.
func (c *Config) Validate() error {
	var errs []error
	if c.ClientID == "" {
		errs = append(errs, errors.New("SPOTIFY_CLIENT_ID is not set"))
	}
	if c.ClientSecret == "" {
		errs = append(errs, errors.New("SPOTIFY_CLIENT_SECRET is not set"))
	}
	return errors.Join(errs...)
}

// HasAPIAccessToken returns true if the HTTP API is protected by a token.
func (c *Config) HasAPIAccessToken() bool {
	return c.APIAccessToken != ""
}

// Addr is the listen address of the HTTP API.
func (c *Config) Addr() string {
	return ":" + c.APIPort
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/spotify-player/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
