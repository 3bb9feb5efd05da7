// Package media derives stable identities and loadable references for
// local media files.
package media

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Scheme is the private URL scheme front-ends use to load local media.
const Scheme = "reel"

// File is an immutable playlist entry.
type File struct {
	ID       string    // percent-encoded FullPath, stable map key
	FullPath string    // absolute, cleaned filesystem path
	Src      string    // reel:// URL with the file name component encoded
	Name     string    // human-readable file name
	Date     time.Time // modification time
}

// Empty is the sentinel returned when there is no current file.
var Empty = File{}

// IsEmpty reports whether f is the empty sentinel.
func (f File) IsEmpty() bool {
	return f.ID == ""
}

// ToFile builds a File for fullPath, reading its modification time.
// Relative paths are resolved against the working directory, so every
// spelling of a path yields the same File.
func ToFile(fullPath string) (File, error) {
	fullPath = Abs(fullPath)
	info, err := os.Stat(fullPath)
	if err != nil {
		return Empty, fmt.Errorf("stat %s: %w", fullPath, err)
	}
	f := build(fullPath)
	f.Date = info.ModTime()
	return f, nil
}

// FromPath is like ToFile but tolerates a missing file, leaving Date zero.
func FromPath(fullPath string) File {
	f, err := ToFile(fullPath)
	if err != nil {
		return build(fullPath)
	}
	return f
}

func build(fullPath string) File {
	fullPath = Abs(fullPath)
	dir, base := filepath.Split(fullPath)
	return File{
		ID:       EncodeID(fullPath),
		FullPath: fullPath,
		Src:      srcURL(dir, base),
		Name:     displayName(base),
	}
}

// Abs returns path absolute and cleaned. When the working directory is
// unknown the path is only cleaned.
func Abs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// EncodeID returns the identifier for an absolute path.
func EncodeID(fullPath string) string {
	return url.PathEscape(fullPath)
}

// DecodeID reverses EncodeID.
func DecodeID(id string) (string, error) {
	return url.PathUnescape(id)
}

func srcURL(dir, base string) string {
	dir = filepath.ToSlash(dir)
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return Scheme + "://" + dir + url.PathEscape(base)
}

// displayName decodes names that arrive already percent-encoded so the
// playlist never shows escape sequences. Invalid escapes are kept verbatim.
func displayName(base string) string {
	if !strings.Contains(base, "%") {
		return base
	}
	decoded, err := url.PathUnescape(base)
	if err != nil {
		return base
	}
	return decoded
}

// WithPath returns a copy of f describing the same file at a new path.
func (f File) WithPath(fullPath string) File {
	nf := build(fullPath)
	nf.Date = f.Date
	return nf
}
