// Package audio post-processes downloaded tracks: ID3 tag writing and
// playlist generation.
//
// # ID3 Tagging
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(track, coverJPEG)
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(true) // extended M3U
//	content := creator.CreatePlaylist(tracks)
//	os.WriteFile(album.PlaylistPath, []byte(content), 0644)
package audio
