package model

import "strings"

// Track represents a single track within an album.
//
// Example:
//
//	track := &Track{Number: "01", Title: "Intro", URL: mp3URL}
//	builder.Apply(album) // track.Path = "/music/Artist/Album/01 - Intro.mp3"
type Track struct {
	// Number is the track position, zero-padded to at least 2 digits.
	Number string

	// Title is the track title.
	Title string

	// Artist is the performing artist, copied from the album heading.
	Artist string

	// Album is the album title.
	Album string

	// URL is the URL to download the MP3 file from.
	URL string

	// Path is the local file path where the track will be saved.
	// Includes the full path and filename with extension.
	Path string
}

// PadTrackNumber trims s and left-pads it with zeros to 2 characters.
// An empty position stays empty and is treated as non-numeric.
func PadTrackNumber(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}
