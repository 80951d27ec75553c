package model

import (
	"strconv"
)

// Album represents an album page with its metadata and tracks.
//
// Album is produced by the extractor with Artist, Title, CoverURL and
// Tracks filled in. Path and CoverPath stay empty until a PathBuilder
// places the album on disk via PathBuilder.Apply.
type Album struct {
	// Artist is the album artist name. "VA" when the page names none.
	Artist string

	// Title is the album title.
	Title string

	// CoverURL is the URL to download the album cover art from.
	// Empty string means no artwork is available.
	CoverURL string

	// Tracks contains the tracks in page order.
	Tracks []*Track

	// Path is the local directory where album files will be saved.
	Path string

	// CoverPath is the local file path for the cover art.
	// Empty if the album has no artwork.
	CoverPath string

	// PlaylistPath is the local file path for the playlist file.
	PlaylistPath string
}

// HasCover returns true if the album has cover art available for download.
func (a *Album) HasCover() bool {
	return a.CoverURL != ""
}

// SelectTracks keeps only the tracks whose number is in numbers, preserving
// page order. A nil or empty selection keeps every track.
//
// Track numbers are compared numerically, so 3 selects track "03".
// Tracks whose number is not numeric are never selected.
func (a *Album) SelectTracks(numbers []int) {
	if len(numbers) == 0 {
		return
	}

	wanted := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		wanted[n] = struct{}{}
	}

	selected := a.Tracks[:0]
	for _, track := range a.Tracks {
		n, err := strconv.Atoi(track.Number)
		if err != nil {
			continue
		}
		if _, ok := wanted[n]; ok {
			selected = append(selected, track)
		}
	}
	a.Tracks = selected
}
