package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/reel/internal/playlist"
)

const appName = "reel"

type Config struct {
	FFmpegPath    string `koanf:"ffmpeg_path"`   // empty means ffmpeg from PATH
	LogLevel      string `koanf:"log_level"`     // "debug", "info", "warn", "error"
	WatchFiles    *bool  `koanf:"watch_files"`   // drop files deleted outside reel (default: true)
	Notifications *bool  `koanf:"notifications"` // desktop notifications for conversions (default: true)
	Icons         string `koanf:"icons"`         // "nerd", "unicode", or "none"

	Convert  ConvertConfig  `koanf:"convert"`
	Playlist PlaylistConfig `koanf:"playlist"`
}

// ConvertConfig holds conversion defaults.
type ConvertConfig struct {
	AudioBitrate string `koanf:"audio_bitrate"` // e.g. "192k"
	VideoBitrate string `koanf:"video_bitrate"` // e.g. "2M"
	OutputDir    string `koanf:"output_dir"`    // empty means next to the source
}

// PlaylistConfig holds playlist defaults used when no session is saved.
type PlaylistConfig struct {
	SortOrder string `koanf:"sort_order"` // "name-asc", "name-desc", "date-asc", "date-desc"
	Shuffle   bool   `koanf:"shuffle"`
	Language  string `koanf:"language"` // BCP 47 tag used to sort names
}

// Load reads the user config then ./config.toml, the last one winning.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.FFmpegPath = ExpandPath(cfg.FFmpegPath)
	cfg.Convert.OutputDir = ExpandPath(cfg.Convert.OutputDir)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/reel/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// WatchEnabled reports whether playlist files are watched for removal.
func (c *Config) WatchEnabled() bool {
	return c.WatchFiles == nil || *c.WatchFiles
}

// NotificationsEnabled reports whether desktop notifications are sent.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// GetLogLevel returns the configured level, defaulting to info.
func (c *Config) GetLogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetConvertConfig returns the conversion configuration with defaults applied.
func (c *Config) GetConvertConfig() ConvertConfig {
	cfg := c.Convert

	if cfg.AudioBitrate == "" {
		cfg.AudioBitrate = "192k"
	}
	if cfg.VideoBitrate == "" {
		cfg.VideoBitrate = "2M"
	}

	return cfg
}

// GetPlaylistConfig returns the playlist configuration with defaults applied.
func (c *Config) GetPlaylistConfig() PlaylistConfig {
	cfg := c.Playlist

	if _, err := playlist.ParseSortOrder(cfg.SortOrder); err != nil {
		cfg.SortOrder = string(playlist.NameAsc)
	}
	if cfg.Language == "" {
		cfg.Language = "und"
	}

	return cfg
}
