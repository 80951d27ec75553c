// Package config provides configuration management for the album downloader.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from TOML or YAML files
//   - Validation and parsing of the track selection list
//
// # Default Settings
//
// The home directory is passed in explicitly:
//
//	home, _ := os.UserHomeDir()
//	settings := config.DefaultSettings(home)
//	// Downloads to ~/Music/{artist}/{album}
//	// 5 simultaneous downloads
//	// ID3 tagging and cover art enabled
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/album-dl.toml", home)
//	// Uses defaults if the file doesn't exist
//
// An example TOML file:
//
//	downloads_path = "/srv/music"
//	simultaneous = 3
//	create_playlist = true
package config
