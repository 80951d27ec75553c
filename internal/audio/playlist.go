package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/album-downloader/internal/model"
)

// PlaylistCreator generates M3U playlists for an album.
//
// Track paths in the playlist are relative (just the filename),
// assuming the playlist file is in the same directory as the tracks.
//
// Example:
//
//	creator := NewPlaylistCreator(true)
//	content := creator.CreatePlaylist(album.Tracks)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Artist - Song Title
//	// 01 - Song Title.mp3
type PlaylistCreator struct {
	extended bool // include EXTINF lines with artist/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
func NewPlaylistCreator(extended bool) *PlaylistCreator {
	return &PlaylistCreator{extended: extended}
}

// CreatePlaylist returns playlist content listing tracks in order.
//
// Durations are not known from the album page, so extended entries
// use -1 as the M3U convention for "unknown".
func (p *PlaylistCreator) CreatePlaylist(tracks []*model.Track) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range tracks {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:-1,%s - %s\n", track.Artist, track.Title)
		}
		sb.WriteString(filepath.Base(track.Path) + "\n")
	}

	return sb.String()
}
