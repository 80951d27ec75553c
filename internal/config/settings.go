package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned by Validate and ParseTrackNumbers.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadsPath  string `toml:"downloads_path" yaml:"downloads_path"`
	Simultaneous   int    `toml:"simultaneous" yaml:"simultaneous"`
	TrackNumbers   []int  `toml:"track_numbers" yaml:"track_numbers"`
	UserAgent      string `toml:"user_agent" yaml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds" yaml:"timeout_seconds"`

	// Cover art settings
	SaveCoverArt    bool `toml:"save_cover_art" yaml:"save_cover_art"`
	EmbedCoverArt   bool `toml:"embed_cover_art" yaml:"embed_cover_art"`
	CoverArtMaxSize int  `toml:"cover_art_max_size" yaml:"cover_art_max_size"`

	// Tag settings
	ModifyTags bool `toml:"modify_tags" yaml:"modify_tags"`

	// Playlist settings
	CreatePlaylist bool `toml:"create_playlist" yaml:"create_playlist"`
	M3UExtended    bool `toml:"m3u_extended" yaml:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
//
// home is the user's home directory; downloads go to <home>/Music.
func DefaultSettings(home string) *Settings {
	return &Settings{
		DownloadsPath:  filepath.Join(home, "Music"),
		Simultaneous:   5,
		UserAgent:      "AlbumDownloader",
		TimeoutSeconds: 60,

		SaveCoverArt:    true,
		EmbedCoverArt:   true,
		CoverArtMaxSize: 1000,

		ModifyTags: true,

		CreatePlaylist: false,
		M3UExtended:    true,
	}
}

// DefaultPath returns where the commands look for a config file when none
// is given: <configDir>/album-dl/config.toml.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, "album-dl", "config.toml")
}

// Load reads settings from a TOML or YAML file on top of DefaultSettings(home).
//
// The format is chosen by extension (.toml, .yaml, .yml). A missing file
// yields the defaults.
func Load(path, home string) (*Settings, error) {
	settings := DefaultSettings(home)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), settings); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalidSettings, ext)
	}

	return settings, nil
}

// Validate checks that the settings can drive a download.
func (s *Settings) Validate() error {
	if s.DownloadsPath == "" {
		return fmt.Errorf("%w: downloads path is empty", ErrInvalidSettings)
	}
	if s.Simultaneous <= 0 {
		return fmt.Errorf("%w: simultaneous downloads must be positive, got %d", ErrInvalidSettings, s.Simultaneous)
	}
	if s.EmbedCoverArt && s.CoverArtMaxSize <= 0 {
		return fmt.Errorf("%w: cover art max size must be positive, got %d", ErrInvalidSettings, s.CoverArtMaxSize)
	}
	return nil
}

// Timeout returns the response header timeout.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ParseTrackNumbers parses a comma-separated list such as "1,3, 05".
//
// An empty string selects nothing (nil). Blank entries are ignored;
// anything else that is not a positive integer is an error.
func ParseTrackNumbers(list string) ([]int, error) {
	var numbers []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: bad track number %q", ErrInvalidSettings, part)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
