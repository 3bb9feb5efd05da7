package playback

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/llehouerou/reel/internal/playlist"
)

// ErrInvalidIntent wraps every validation failure.
var ErrInvalidIntent = errors.New("invalid request")

// Intent is a request from a front-end surface. Intents are validated
// before they reach the dispatch loop.
type Intent interface {
	Validate() error
	intent()
}

// DropFiles replaces the playlist with Paths, or appends them when Append
// is set. Directories are expanded.
type DropFiles struct {
	Paths  []string
	Append bool
}

// Navigate moves the current index by Delta.
type Navigate struct {
	Delta int
}

// SelectAbsolute makes Index current and starts playing it.
type SelectAbsolute struct {
	Index int
}

// Reorder moves the file at Start to End. NewCurrent is where the current
// file ended up, as computed by the dragging surface.
type Reorder struct {
	Start      int
	End        int
	NewCurrent int
}

// Remove removes files by id. With no ids, the selection is removed.
type Remove struct {
	IDs []string
}

// RemoveAll empties the playlist.
type RemoveAll struct{}

// Sort sorts the playlist.
type Sort struct {
	Order playlist.SortOrder
}

// ToggleShuffle flips shuffle.
type ToggleShuffle struct{}

// SetShuffle sets shuffle explicitly.
type SetShuffle struct {
	Enabled bool
}

// Rename renames a file on disk. NewName is a bare file name; when it has
// no extension the original one is kept.
type Rename struct {
	ID      string
	NewName string
}

// SetSelection replaces the selection.
type SetSelection struct {
	IDs []string
}

// Undo restores the playlist before the last structural change.
type Undo struct{}

// Redo re-applies an undone change.
type Redo struct{}

// SetPlayState reports a play state change from the player surface.
type SetPlayState struct {
	State State
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidIntent, fmt.Sprintf(format, args...))
}

// Validate implements Intent.
func (i DropFiles) Validate() error {
	if i.Append && len(i.Paths) == 0 {
		return invalid("no files to add")
	}
	for _, p := range i.Paths {
		if strings.TrimSpace(p) == "" {
			return invalid("empty path")
		}
	}
	return nil
}

// Validate implements Intent.
func (i Navigate) Validate() error {
	if i.Delta == 0 {
		return invalid("zero navigation step")
	}
	return nil
}

// Validate implements Intent.
func (i SelectAbsolute) Validate() error {
	if i.Index < 0 {
		return invalid("negative index %d", i.Index)
	}
	return nil
}

// Validate implements Intent.
func (i Reorder) Validate() error {
	if i.Start < 0 || i.End < 0 || i.NewCurrent < -1 {
		return invalid("negative reorder position")
	}
	return nil
}

// Validate implements Intent.
func (i Remove) Validate() error { return nil }

// Validate implements Intent.
func (RemoveAll) Validate() error { return nil }

// Validate implements Intent.
func (i Sort) Validate() error {
	if _, err := playlist.ParseSortOrder(string(i.Order)); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// Validate implements Intent.
func (ToggleShuffle) Validate() error { return nil }

// Validate implements Intent.
func (SetShuffle) Validate() error { return nil }

// Validate implements Intent.
func (i Rename) Validate() error {
	name := strings.TrimSpace(i.NewName)
	switch {
	case i.ID == "":
		return invalid("missing file id")
	case name == "" || name == "." || name == "..":
		return invalid("empty file name")
	case strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/'):
		return invalid("file name %q contains a path separator", name)
	}
	return nil
}

// Validate implements Intent.
func (SetSelection) Validate() error { return nil }

// Validate implements Intent.
func (Undo) Validate() error { return nil }

// Validate implements Intent.
func (Redo) Validate() error { return nil }

// Validate implements Intent.
func (i SetPlayState) Validate() error {
	if i.State < StateStopped || i.State > StatePaused {
		return invalid("unknown play state %d", i.State)
	}
	return nil
}

func (DropFiles) intent()      {}
func (Navigate) intent()       {}
func (SelectAbsolute) intent() {}
func (Reorder) intent()        {}
func (Remove) intent()         {}
func (RemoveAll) intent()      {}
func (Sort) intent()           {}
func (ToggleShuffle) intent()  {}
func (SetShuffle) intent()     {}
func (Rename) intent()         {}
func (SetSelection) intent()   {}
func (Undo) intent()           {}
func (Redo) intent()           {}
func (SetPlayState) intent()   {}

// TogglePlay flips between playing and paused, starting playback when stopped.
type TogglePlay struct{}

// Validate implements Intent.
func (TogglePlay) Validate() error { return nil }

func (TogglePlay) intent() {}
