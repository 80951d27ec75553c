package model

import (
	"path/filepath"

	ioutils "github.com/handiism/album-downloader/internal/io"
)

const (
	coverFileName = "cover.jpg"
	trackFileExt  = ".mp3"
	playlistExt   = ".m3u"
)

// PathBuilder computes where album files are saved.
//
// Layout under BaseDir:
//
//	<BaseDir>/<artist>/<album>/<NN> - <title>.mp3
//	<BaseDir>/<artist>/<album>/cover.jpg
//	<BaseDir>/<artist>/<album>/<album>.m3u
//
// Every path component taken from page metadata is sanitized.
type PathBuilder struct {
	BaseDir string
}

// NewPathBuilder creates a PathBuilder rooted at baseDir.
func NewPathBuilder(baseDir string) *PathBuilder {
	return &PathBuilder{BaseDir: baseDir}
}

// AlbumDir returns the directory for an artist/album pair.
func (b *PathBuilder) AlbumDir(artist, album string) string {
	return filepath.Join(b.BaseDir, ioutils.SanitizeFileName(artist), ioutils.SanitizeFileName(album))
}

// TrackPath returns the file path of track inside albumDir.
//
// Number and title both come from the page and are sanitized, so the
// result never leaves albumDir. A track without a number is saved as
// "<title>.mp3".
func (b *PathBuilder) TrackPath(albumDir string, track *Track) string {
	name := ioutils.SanitizeFileName(track.Title)
	if number := ioutils.SanitizeFileName(track.Number); number != "" {
		name = number + " - " + name
	}
	return filepath.Join(albumDir, name+trackFileExt)
}

// CoverPath returns the file path of the cover image inside albumDir.
func (b *PathBuilder) CoverPath(albumDir string) string {
	return filepath.Join(albumDir, coverFileName)
}

// PlaylistPath returns the file path of the album playlist inside albumDir.
func (b *PathBuilder) PlaylistPath(albumDir, album string) string {
	return filepath.Join(albumDir, ioutils.SanitizeFileName(album)+playlistExt)
}

// Apply fills in Path, CoverPath, PlaylistPath and every track Path.
func (b *PathBuilder) Apply(album *Album) {
	album.Path = b.AlbumDir(album.Artist, album.Title)
	album.PlaylistPath = b.PlaylistPath(album.Path, album.Title)
	album.CoverPath = ""
	if album.HasCover() {
		album.CoverPath = b.CoverPath(album.Path)
	}
	for _, track := range album.Tracks {
		track.Path = b.TrackPath(album.Path, track)
	}
}
