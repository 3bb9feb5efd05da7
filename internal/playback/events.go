package playback

import (
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/playlist"
)

// StateChange is emitted when the play state changes.
type StateChange struct {
	Previous State
	Current  State
}

// PlaylistChange is emitted when files are dropped, restored or cleared.
// With Clear set, Added is the complete new contents; otherwise it is
// appended to what subscribers already have.
type PlaylistChange struct {
	Clear bool
	Added []media.File
}

// CurrentChange is emitted when the current file must be (re)loaded by
// the player. It is not emitted when only the current index moves.
type CurrentChange struct {
	File     media.File // media.Empty when nothing is current
	Index    int
	Autoplay bool
}

// RemoveChange is emitted after files are removed.
type RemoveChange struct {
	IDs   []string
	Index int
}

// OrderChange is emitted after a sort or a reorder with the full new id
// order and the rebased current index.
type OrderChange struct {
	IDs   []string
	Index int
	Order playlist.SortOrder // empty for manual reorders
}

// RenameResult is emitted after a rename attempt.
type RenameResult struct {
	PreviousID string
	File       media.File // the renamed file, or the unchanged one on error
	Err        error
}

// ModeChange is emitted when shuffle or the sort order changes.
type ModeChange struct {
	Shuffle bool
	Order   playlist.SortOrder
}

// SelectionChange is emitted when the selection changes.
type SelectionChange struct {
	IDs []string
}

// ErrorEvent is emitted when an operation is abandoned because of an error.
type ErrorEvent struct {
	Op   errmsg.Op
	Path string // file path if applicable
	Err  error
}

// Message returns the user-facing text for the error.
func (e ErrorEvent) Message() string {
	return errmsg.FormatWith(e.Op, e.Path, e.Err)
}
