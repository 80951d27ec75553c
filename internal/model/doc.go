// Package model defines the core data structures used throughout
// the album downloader.
//
// # Album
//
// Album represents one album page: artist, title, cover URL and tracks.
//
// # Track
//
// Track represents a single track within an album:
//
//	track := &model.Track{Number: "01", Title: "Intro", URL: mp3URL}
//
// # Paths
//
// PathBuilder decides where files land, sanitizing every component
// that comes from page metadata:
//
//	builder := model.NewPathBuilder("/home/user/Music")
//	builder.Apply(album)
//	fmt.Println(album.Path)           // /home/user/Music/Artist/Album
//	fmt.Println(album.Tracks[0].Path) // /home/user/Music/Artist/Album/01 - Intro.mp3
package model
