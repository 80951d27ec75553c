// Package extract reads album metadata and per-track download links
// from album page HTML.
//
// Extraction is a pure function of the page text and the domain it was
// served from; no network access happens here.
//
//	extractor := extract.NewExtractor()
//	album, err := extractor.Extract(html, "music.example.com")
//	if errors.Is(err, extract.ErrNoTracks) {
//	    fmt.Println("nothing to download")
//	}
//	fmt.Printf("Album: %s by %s\n", album.Title, album.Artist)
package extract
