// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//   - Cover art scaling for tag embedding
//
// # File Operations
//
//	created, err := ioutils.EnsureDir("/music/Artist/Album")
//	err = ioutils.WriteFile("/music/Artist/Album/Album.m3u", content)
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName(`Who? "Me"`) // Returns "Who Me"
//
// # Image Processing
//
//	svc := ioutils.NewImageService()
//	jpeg, _ := svc.FitCover(coverBytes, 500)
package ioutils
