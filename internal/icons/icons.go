// Package icons selects the glyphs used to decorate files and modes.
package icons

import "github.com/llehouerou/reel/internal/media"

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Video    string
	Audio    string
	Shuffle  string
	Sort     string
	Playing  string
	Paused   string
	Selected string
}

var (
	nerdIcons = Icons{
		Video:    "\uf03d ", // nf-fa-video_camera
		Audio:    "\uf001 ", // nf-fa-music
		Shuffle:  "󰒟",       // nf-md-shuffle
		Sort:     "󰒺",       // nf-md-sort
		Playing:  "\uf04b",  // nf-fa-play
		Paused:   "\uf04c",  // nf-fa-pause
		Selected: "\uf00c",  // nf-fa-check
	}

	unicodeIcons = Icons{
		Video:    "🎬 ",
		Audio:    "🎵 ",
		Shuffle:  "🔀",
		Sort:     "⇅",
		Playing:  "▶",
		Paused:   "⏸",
		Selected: "●",
	}

	noneIcons = Icons{
		Shuffle:  "[S]",
		Sort:     "",
		Playing:  ">",
		Paused:   "=",
		Selected: "*",
	}

	current = noneIcons
)

// Init selects the icon set. Unknown styles fall back to none.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// FormatFile prefixes name with the icon matching the file type at path.
func FormatFile(name, path string) string {
	switch {
	case media.IsVideoFile(path):
		return current.Video + name
	case media.IsAudioFile(path):
		return current.Audio + name
	default:
		return name
	}
}

// Shuffle returns the shuffle icon.
func Shuffle() string {
	return current.Shuffle
}

// Sort returns the sort order icon.
func Sort() string {
	return current.Sort
}

// Playing returns the playing indicator.
func Playing() string {
	return current.Playing
}

// Paused returns the paused indicator.
func Paused() string {
	return current.Paused
}

// Selected returns the selection marker.
func Selected() string {
	return current.Selected
}
