package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/handiism/album-downloader/internal/model"
)

// ErrNoTracks is returned when an album page lists no playable tracks.
//
// This typically occurs when:
//   - The URL is not an album page
//   - The page layout has changed unexpectedly
var ErrNoTracks = errors.New("no tracks found on page")

// defaultArtist is used when the page heading has no "Artist - Album" form.
const defaultArtist = "VA"

const (
	headingSelector  = "h1"
	trackSelector    = ".playlist__item"
	positionSelector = ".playlist__position"
	playSelector     = ".playlist__control.play"
	titleSelector    = ".playlist__details a.strong"
	coverSelector    = ".album-img"
)

// Extractor reads album metadata and download links from album page HTML.
//
// The page is expected to carry:
//   - an h1 heading "Artist - Album" (artist falls back to "VA")
//   - one .playlist__item per track with position, title and a
//     play control whose data-url is a path on the source domain
//   - an optional .album-img element whose data-src is the cover URL
//
// Example usage:
//
//	extractor := NewExtractor()
//	album, err := extractor.Extract(html, "music.example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, track := range album.Tracks {
//	    fmt.Printf("%s. %s\n", track.Number, track.Title)
//	}
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses pageHTML and returns the album with its tracks in page order.
//
// domain is the host (optionally with port) the page was served from;
// track URLs are built as https://<domain><data-url>. The returned album
// has no local paths yet.
//
// Returns ErrNoTracks if the page lists no tracks.
func (e *Extractor) Extract(pageHTML, domain string) (*model.Album, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse album page: %w", err)
	}

	artist, title := splitHeading(doc.Find(headingSelector).First().Text())
	album := &model.Album{
		Artist: artist,
		Title:  title,
	}
	if cover, ok := doc.Find(coverSelector).First().Attr("data-src"); ok {
		album.CoverURL = strings.TrimSpace(cover)
	}

	doc.Find(trackSelector).Each(func(_ int, item *goquery.Selection) {
		dataURL, _ := item.Find(playSelector).First().Attr("data-url")
		album.Tracks = append(album.Tracks, &model.Track{
			Number: model.PadTrackNumber(item.Find(positionSelector).First().Text()),
			Title:  strings.TrimSpace(item.Find(titleSelector).First().Text()),
			Artist: artist,
			Album:  title,
			URL:    "https://" + domain + strings.TrimSpace(dataURL),
		})
	})

	if len(album.Tracks) == 0 {
		return nil, ErrNoTracks
	}
	return album, nil
}

// splitHeading turns "Artist - Album" into its parts. Only the first
// separator splits, so album titles may contain " - " themselves.
func splitHeading(heading string) (artist, album string) {
	heading = strings.TrimSpace(heading)
	artist, album, found := strings.Cut(heading, " - ")
	if !found {
		return defaultArtist, heading
	}
	return strings.TrimSpace(artist), strings.TrimSpace(album)
}
