// Package fetch provides the HTTP client used to retrieve album pages,
// tracks and cover art.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Response header timeouts
//   - Classification of unresolvable hosts (ErrHostNotFound)
//
// # Basic Usage
//
//	client := fetch.NewClient(30 * time.Second)
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://example.com/album/name")
//
//	// Stream a file; the caller inspects the status and closes the body
//	resp, err := client.Fetch(ctx, mp3URL)
//	if errors.Is(err, fetch.ErrHostNotFound) {
//	    // skip
//	}
package fetch
