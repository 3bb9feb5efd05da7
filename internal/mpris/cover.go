package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

var artExtensions = []string{".jpg", ".png", ".jpeg"}

// sidecarSuffixes are appended to the media file name without extension.
var sidecarSuffixes = []string{"", "-poster", "-thumb"}

// dirArtNames are shared by every file in a directory, in priority order.
var dirArtNames = []string{"poster", "cover", "folder"}

// FindArt looks for artwork next to a media file: first a sidecar named
// after the file ("clip.jpg", "clip-poster.png"), then a directory poster
// or cover. Returns the path, or empty string if none exists.
func FindArt(mediaPath string) string {
	dir := filepath.Dir(mediaPath)
	stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))

	var candidates []string
	for _, suffix := range sidecarSuffixes {
		candidates = append(candidates, stem+suffix)
	}
	candidates = append(candidates, dirArtNames...)

	for _, name := range candidates {
		for _, ext := range artExtensions {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
