package audio

import (
	"strconv"

	"github.com/bogem/id3v2"
	"github.com/handiism/album-downloader/internal/model"
)

// TagConfig selects which ID3 frames the Tagger writes.
type TagConfig struct {
	// ModifyTags is a master switch for the text frames.
	ModifyTags bool

	// EmbedCover writes the cover as an attached picture when one is given.
	EmbedCover bool
}

// DefaultTagConfig returns the default tag configuration: all text
// frames and the cover are written.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags: true,
		EmbedCover: true,
	}
}

// Tagger writes ID3 tags to downloaded MP3 files.
//
// Tagger uses the id3v2 library to set:
//   - Artist, Album Artist
//   - Album Title, Track Title
//   - Track Number
//   - Cover Art (attached picture)
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags(track, coverJPEG); err != nil {
//	    log.Printf("Failed to tag %s: %v", track.Path, err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// Enabled reports whether SaveTags would change anything for a file
// given whether cover art is available.
func (t *Tagger) Enabled(haveCover bool) bool {
	return t.config.ModifyTags || (t.config.EmbedCover && haveCover)
}

// SaveTags writes ID3 tags to the track's file at track.Path.
//
// cover is JPEG data for the front cover; nil skips the picture frame.
// Existing frames not managed here are preserved.
func (t *Tagger) SaveTags(track *model.Track, cover []byte) error {
	tag, err := id3v2.Open(track.Path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if t.config.ModifyTags {
		tag.SetArtist(track.Artist)
		tag.SetAlbum(track.Album)
		tag.SetTitle(track.Title)
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, track.Artist)
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, trackNumber(track.Number))
	}

	if t.config.EmbedCover && cover != nil {
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     cover,
		})
	}

	return tag.Save()
}

// trackNumber drops zero padding ("03" -> "3"); non-numeric values pass through.
func trackNumber(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	return strconv.Itoa(n)
}
