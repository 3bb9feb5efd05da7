//nolint:goconst // test cases intentionally repeat strings for readability
package icons

import (
	"testing"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  Icons
	}{
		{"nerd style", "nerd", nerdIcons},
		{"unicode style", "unicode", unicodeIcons},
		{"none style", "none", noneIcons},
		{"empty string defaults to none", "", noneIcons},
		{"unknown style defaults to none", "invalid", noneIcons},
		{"case sensitive - NERD defaults to none", "NERD", noneIcons},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)
			if current != tt.want {
				t.Errorf("Init(%q) selected %+v", tt.style, current)
			}
		})
	}

	Init("none")
}

func TestFormatFile(t *testing.T) {
	tests := []struct {
		name     string
		style    string
		file     string
		path     string
		expected string
	}{
		{"none leaves video bare", "none", "clip", "/m/clip.mp4", "clip"},
		{"none leaves audio bare", "none", "song", "/m/song.mp3", "song"},
		{"unicode video", "unicode", "clip", "/m/clip.mkv", "🎬 clip"},
		{"unicode audio", "unicode", "song", "/m/song.flac", "🎵 song"},
		{"nerd video", "nerd", "clip", "/m/clip.webm", "\uf03d clip"},
		{"extension is case insensitive", "unicode", "clip", "/m/CLIP.MOV", "🎬 clip"},
		{"unknown extension has no icon", "unicode", "notes", "/m/notes.txt", "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)
			defer Init("none")

			if got := FormatFile(tt.file, tt.path); got != tt.expected {
				t.Errorf("FormatFile(%q, %q) = %q, want %q", tt.file, tt.path, got, tt.expected)
			}
		})
	}
}

func TestModeIcons(t *testing.T) {
	Init("none")
	if Shuffle() != "[S]" {
		t.Errorf("Shuffle() = %q, want [S]", Shuffle())
	}
	if Selected() != "*" {
		t.Errorf("Selected() = %q, want *", Selected())
	}

	Init("unicode")
	defer Init("none")
	if Playing() != "▶" || Paused() != "⏸" {
		t.Errorf("Playing/Paused = %q/%q", Playing(), Paused())
	}
	if Sort() == "" {
		t.Error("unicode Sort() should not be empty")
	}
}
