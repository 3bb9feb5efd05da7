// Package playlistpanel renders the playlist and turns key actions into
// playback intents.
package playlistpanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/ui"
	"github.com/llehouerou/reel/internal/ui/action"
	"github.com/llehouerou/reel/internal/ui/cursor"
)

// Model mirrors the service state for display. It never mutates the
// playlist itself; every change goes out as a Dispatch action.
type Model struct {
	ui.Base
	cursor   cursor.Cursor
	files    []media.File
	current  int
	selected map[string]bool
	state    playback.State
	shuffle  bool
	order    playlist.SortOrder
}

// New creates an empty playlist panel.
func New() Model {
	return Model{
		cursor:   cursor.New(ui.ScrollMargin),
		current:  -1,
		selected: make(map[string]bool),
	}
}

// SetSnapshot replaces the displayed state.
func (m *Model) SetSnapshot(s playback.Snapshot) {
	m.files = s.Files
	m.current = s.Index
	m.state = s.State
	m.shuffle = s.Shuffle
	m.order = s.Order
	m.selected = make(map[string]bool, len(s.Selected))
	for _, id := range s.Selected {
		m.selected[id] = true
	}
	m.cursor.ClampToBounds(len(m.files), m.listHeight())
}

// SetSize sets the panel dimensions and keeps the cursor visible.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.EnsureVisible(len(m.files), m.listHeight())
}

// SyncCursor moves the cursor to the current file.
func (m *Model) SyncCursor() {
	if m.current >= 0 {
		m.cursor.Jump(m.current, len(m.files), m.listHeight())
	}
}

// Cursor returns the cursor position.
func (m Model) Cursor() int {
	return m.cursor.Pos()
}

// CursorFile returns the file under the cursor.
func (m Model) CursorFile() (media.File, bool) {
	if pos := m.cursor.Pos(); pos < len(m.files) {
		return m.files[pos], true
	}
	return media.Empty, false
}

// SelectedIDs returns the selected ids in playlist order.
func (m Model) SelectedIDs() []string {
	var ids []string
	for _, f := range m.files {
		if m.selected[f.ID] {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// Update handles a resolved key action. handled is false when the action
// is not a playlist action.
func (m Model) Update(a keymap.Action) (_ Model, cmd tea.Cmd, handled bool) {
	if m.cursor.HandleAction(a, len(m.files), m.listHeight()) {
		return m, nil, true
	}

	f, ok := m.CursorFile()
	pos := m.cursor.Pos()

	switch a {
	case keymap.ActionSelect:
		if ok {
			cmd = dispatch(playback.SelectAbsolute{Index: pos})
		}
	case keymap.ActionToggleSelect:
		if ok {
			cmd = dispatch(playback.SetSelection{IDs: m.toggled(f.ID)})
			m.cursor.Move(1, len(m.files), m.listHeight())
		}
	case keymap.ActionClearSelect:
		if len(m.selected) > 0 {
			cmd = dispatch(playback.SetSelection{})
		}
	case keymap.ActionDelete:
		ids := m.SelectedIDs()
		if len(ids) == 0 && ok {
			ids = []string{f.ID}
		}
		if len(ids) > 0 {
			cmd = dispatch(playback.Remove{IDs: ids})
		}
	case keymap.ActionClear:
		if len(m.files) > 0 {
			cmd = dispatch(playback.RemoveAll{})
		}
	case keymap.ActionMoveItemUp:
		cmd = m.move(-1)
	case keymap.ActionMoveItemDown:
		cmd = m.move(1)
	case keymap.ActionUndo:
		cmd = dispatch(playback.Undo{})
	case keymap.ActionRedo:
		cmd = dispatch(playback.Redo{})
	case keymap.ActionCycleSort:
		cmd = dispatch(playback.Sort{Order: m.order.Next()})
	case keymap.ActionRename:
		if ok {
			cmd = action.Cmd(Source, RenameRequest{File: f})
		}
	default:
		return m, nil, false
	}
	return m, cmd, true
}

// move moves the file under the cursor by delta and keeps the cursor on it.
func (m *Model) move(delta int) tea.Cmd {
	start := m.cursor.Pos()
	end := start + delta
	if len(m.files) == 0 || end < 0 || end >= len(m.files) {
		return nil
	}
	m.cursor.Jump(end, len(m.files), m.listHeight())
	return dispatch(playback.Reorder{
		Start:      start,
		End:        end,
		NewCurrent: playlist.IndexAfterMove(m.current, start, end),
	})
}

// toggled returns the selection with id flipped, in playlist order.
func (m Model) toggled(id string) []string {
	var ids []string
	for _, f := range m.files {
		if f.ID == id {
			if !m.selected[id] {
				ids = append(ids, id)
			}
			continue
		}
		if m.selected[f.ID] {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

func dispatch(in playback.Intent) tea.Cmd {
	return action.Cmd(Source, Dispatch{Intent: in})
}
