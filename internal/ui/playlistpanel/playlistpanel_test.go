package playlistpanel

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reel/internal/icons"
	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/ui/action"
	"github.com/llehouerou/reel/internal/ui/testutil"
)

func files(names ...string) []media.File {
	out := make([]media.File, len(names))
	for i, n := range names {
		out[i] = media.FromPath("/videos/" + n + ".mp4")
	}
	return out
}

func newPanel(t *testing.T, snap playback.Snapshot) Model {
	t.Helper()
	m := New()
	m.SetSize(60, 12)
	m.SetFocused(true)
	m.SetSnapshot(snap)
	return m
}

func intentOf(t *testing.T, cmd tea.Cmd) playback.Intent {
	t.Helper()
	msg, ok := testutil.ExecuteCmd(cmd).(action.Msg)
	require.True(t, ok, "expected action.Msg")
	assert.Equal(t, Source, msg.Source)
	d, ok := msg.Action.(Dispatch)
	require.True(t, ok, "expected Dispatch, got %T", msg.Action)
	return d.Intent
}

func press(t *testing.T, m Model, a keymap.Action) (Model, tea.Cmd) {
	t.Helper()
	m, cmd, handled := m.Update(a)
	require.True(t, handled, "action %q not handled", a)
	return m, cmd
}

func TestUpdate_Navigation(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Files: files("a", "b", "c"), Index: 0})

	m, cmd := press(t, m, keymap.ActionMoveDown)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Cursor())

	m, _ = press(t, m, keymap.ActionJumpEnd)
	assert.Equal(t, 2, m.Cursor())

	m, _ = press(t, m, keymap.ActionJumpStart)
	assert.Equal(t, 0, m.Cursor())
}

func TestUpdate_SelectPlaysCursorFile(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Files: files("a", "b", "c"), Index: 0})
	m, _ = press(t, m, keymap.ActionMoveDown)
	m, _ = press(t, m, keymap.ActionMoveDown)

	_, cmd := press(t, m, keymap.ActionSelect)

	assert.Equal(t, playback.SelectAbsolute{Index: 2}, intentOf(t, cmd))
}

func TestUpdate_ToggleSelectKeepsPlaylistOrder(t *testing.T) {
	fs := files("a", "b", "c")
	m := newPanel(t, playback.Snapshot{Files: fs, Index: 0, Selected: []string{fs[2].ID}})

	m, cmd := press(t, m, keymap.ActionToggleSelect)

	assert.Equal(t, playback.SetSelection{IDs: []string{fs[0].ID, fs[2].ID}}, intentOf(t, cmd))
	assert.Equal(t, 1, m.Cursor(), "cursor advances")
}

func TestUpdate_ToggleSelectDeselects(t *testing.T) {
	fs := files("a", "b")
	m := newPanel(t, playback.Snapshot{Files: fs, Index: 0, Selected: []string{fs[0].ID}})

	_, cmd := press(t, m, keymap.ActionToggleSelect)

	assert.Equal(t, playback.SetSelection{}, intentOf(t, cmd))
}

func TestUpdate_DeleteSelectionOrCursor(t *testing.T) {
	fs := files("a", "b", "c")

	m := newPanel(t, playback.Snapshot{Files: fs, Index: 0, Selected: []string{fs[2].ID, fs[1].ID}})
	_, cmd := press(t, m, keymap.ActionDelete)
	assert.Equal(t, playback.Remove{IDs: []string{fs[1].ID, fs[2].ID}}, intentOf(t, cmd))

	m = newPanel(t, playback.Snapshot{Files: fs, Index: 0})
	_, cmd = press(t, m, keymap.ActionDelete)
	assert.Equal(t, playback.Remove{IDs: []string{fs[0].ID}}, intentOf(t, cmd))
}

func TestUpdate_EmptyPlaylistIsQuiet(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Index: -1})

	for _, a := range []keymap.Action{
		keymap.ActionSelect, keymap.ActionDelete, keymap.ActionClear,
		keymap.ActionToggleSelect, keymap.ActionClearSelect,
		keymap.ActionMoveItemUp, keymap.ActionMoveItemDown, keymap.ActionRename,
	} {
		_, cmd := press(t, m, a)
		assert.Nil(t, cmd, "action %q", a)
	}
}

func TestUpdate_MoveItemRebasesCurrent(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Files: files("a", "b", "c", "d"), Index: 2})
	m, _ = press(t, m, keymap.ActionMoveDown)

	m, cmd := press(t, m, keymap.ActionMoveItemDown)

	assert.Equal(t, playback.Reorder{Start: 1, End: 2, NewCurrent: 1}, intentOf(t, cmd))
	assert.Equal(t, 2, m.Cursor(), "cursor follows the moved file")
}

func TestUpdate_MoveItemAtEdgeIsNoop(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Files: files("a", "b"), Index: 0})

	_, cmd := press(t, m, keymap.ActionMoveItemUp)

	assert.Nil(t, cmd)
}

func TestUpdate_CycleSort(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Files: files("a"), Index: 0, Order: playlist.NameAsc})

	_, cmd := press(t, m, keymap.ActionCycleSort)

	assert.Equal(t, playback.Sort{Order: playlist.NameDesc}, intentOf(t, cmd))
}

func TestUpdate_UndoRedoClear(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Files: files("a"), Index: 0})

	_, cmd := press(t, m, keymap.ActionUndo)
	assert.Equal(t, playback.Undo{}, intentOf(t, cmd))
	_, cmd = press(t, m, keymap.ActionRedo)
	assert.Equal(t, playback.Redo{}, intentOf(t, cmd))
	_, cmd = press(t, m, keymap.ActionClear)
	assert.Equal(t, playback.RemoveAll{}, intentOf(t, cmd))
}

func TestUpdate_RenameRequest(t *testing.T) {
	fs := files("a", "b")
	m := newPanel(t, playback.Snapshot{Files: fs, Index: 0})

	_, cmd := press(t, m, keymap.ActionRename)

	msg, ok := testutil.ExecuteCmd(cmd).(action.Msg)
	require.True(t, ok)
	assert.Equal(t, RenameRequest{File: fs[0]}, msg.Action)
}

func TestUpdate_UnknownAction(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Files: files("a"), Index: 0})

	_, _, handled := m.Update(keymap.ActionQuit)

	assert.False(t, handled)
}

func TestSetSnapshot_ClampsCursor(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Files: files("a", "b", "c"), Index: 0})
	m, _ = press(t, m, keymap.ActionJumpEnd)

	m.SetSnapshot(playback.Snapshot{Files: files("a"), Index: 0})

	assert.Equal(t, 0, m.Cursor())
}

func TestSyncCursor(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Files: files("a", "b", "c"), Index: 2})

	m.SyncCursor()

	assert.Equal(t, 2, m.Cursor())
}

func TestView(t *testing.T) {
	icons.Init("none")
	fs := files("alpha", "beta", "gamma")
	fs[1].Date = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	m := newPanel(t, playback.Snapshot{
		Files:    fs,
		Index:    1,
		Shuffle:  true,
		Order:    playlist.DateDesc,
		Selected: []string{fs[2].ID},
		State:    playback.StatePlaying,
	})

	view := m.View()

	assert.True(t, testutil.ContainsLine(view, "Playlist [1 selected]"))
	assert.True(t, testutil.ContainsLine(view, "[S]"))
	assert.True(t, testutil.ContainsLine(view, playlist.DateDesc.String()))
	assert.Contains(t, testutil.FindLine(view, "beta"), "> beta")
	assert.Contains(t, testutil.FindLine(view, "beta"), "2025-06-01 09:30")
	assert.Contains(t, testutil.FindLine(view, "gamma"), "*")
}

func TestView_Counter(t *testing.T) {
	m := newPanel(t, playback.Snapshot{Files: files("a", "b", "c"), Index: 1})

	assert.True(t, testutil.ContainsLine(m.View(), "Playlist (2/3)"))
}

func TestView_ZeroSize(t *testing.T) {
	assert.Empty(t, New().View())
}
