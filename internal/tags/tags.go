// Package tags reads the embedded metadata of audio files for desktop
// integrations. Video containers are left to their file names.
package tags

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"

	"github.com/llehouerou/reel/internal/media"
)

const extMP3 = ".mp3"

// Tag is the metadata shown for an audio file.
type Tag struct {
	Path        string
	Title       string // falls back to the file name
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Year        int
	TrackNumber int
}

// Read reads tag metadata from an audio file. Files that are not audio
// return ErrNotAudio.
func Read(path string) (*Tag, error) {
	if !media.IsAudioFile(path) {
		return nil, ErrNotAudio
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if strings.ToLower(filepath.Ext(path)) == extMP3 {
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readID3v2(path)
		}
		return nil, err
	}

	track, _ := m.Track()
	t := &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		Genre:       m.Genre(),
		Year:        m.Year(),
		TrackNumber: track,
	}
	return t.withDefaults(), nil
}

// readID3v2 reads MP3 metadata using only the id3v2 library.
func readID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	track, _ := parseTrackNumber(textFrame(id3tag, "TRCK"))
	year := 0
	if y := id3tag.Year(); len(y) >= 4 {
		year, _ = strconv.Atoi(y[:4])
	}

	t := &Tag{
		Path:        path,
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: textFrame(id3tag, "TPE2"),
		Album:       id3tag.Album(),
		Genre:       id3tag.Genre(),
		Year:        year,
		TrackNumber: track,
	}
	return t.withDefaults(), nil
}

func (t *Tag) withDefaults() *Tag {
	if t.Title == "" {
		t.Title = filepath.Base(t.Path)
	}
	if t.AlbumArtist == "" {
		t.AlbumArtist = t.Artist
	}
	return t
}

// parseTrackNumber parses a track number string like "5" or "5/10".
func parseTrackNumber(s string) (num, total int) {
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(parts[0])
	if len(parts) == 2 {
		total, _ = strconv.Atoi(parts[1])
	}
	return num, total
}

// textFrame reads a text frame value from an ID3v2 tag.
func textFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
