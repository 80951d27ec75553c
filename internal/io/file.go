package ioutils

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	repeatedSpace = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Unicode is normalized to NFC so visually equal names map to one file
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) are dropped
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to a single space
//   - Leading and trailing whitespace is removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2") // Returns "Song Part 12"
//	SanitizeFileName("Track...")       // Returns "Track"
func SanitizeFileName(name string) string {
	name = norm.NFC.String(name)
	name = invalidChars.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = trailingDots.ReplaceAllString(name, "")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// created reports whether the directory had to be made, so callers can
// tell the user about new album folders.
func EnsureDir(path string) (created bool, err error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
		}
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return false, err
	}
	return true, nil
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
