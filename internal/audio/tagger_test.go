package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/handiism/album-downloader/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagger_SaveTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01 - Song.mp3")
	audioFrames := make([]byte, 128)
	copy(audioFrames, []byte{0xFF, 0xFB, 0x90, 0x64})
	require.NoError(t, os.WriteFile(path, audioFrames, 0o644))

	track := &model.Track{Number: "03", Title: "Song", Artist: "Artist", Album: "Album", Path: path}
	cover := []byte{0xFF, 0xD8, 0xFF, 0xD9}

	require.NoError(t, NewTagger(nil).SaveTags(track, cover))

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()

	assert.Equal(t, "Artist", tag.Artist())
	assert.Equal(t, "Album", tag.Album())
	assert.Equal(t, "Song", tag.Title())
	assert.Equal(t, "3", tag.GetTextFrame("TRCK").Text)

	pictures := tag.GetFrames(tag.CommonID("Attached picture"))
	require.Len(t, pictures, 1)
	pic, ok := pictures[0].(id3v2.PictureFrame)
	require.True(t, ok)
	assert.Equal(t, cover, pic.Picture)
}

func TestTagger_Enabled(t *testing.T) {
	tagsOnly := NewTagger(&TagConfig{ModifyTags: true})
	coverOnly := NewTagger(&TagConfig{EmbedCover: true})
	none := NewTagger(&TagConfig{})

	assert.True(t, tagsOnly.Enabled(false))
	assert.False(t, coverOnly.Enabled(false))
	assert.True(t, coverOnly.Enabled(true))
	assert.False(t, none.Enabled(true))
}

func TestTrackNumber(t *testing.T) {
	assert.Equal(t, "3", trackNumber("03"))
	assert.Equal(t, "12", trackNumber("12"))
	assert.Equal(t, "A1", trackNumber("A1"))
}
