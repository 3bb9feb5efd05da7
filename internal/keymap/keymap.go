package keymap

// Binding ties keys to an action and documents it.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "playlist", "convert"
}

// Bindings contains all key bindings, in help order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextFile, []string{"pgdown", "n"}, "Next file", "playback"},
	{ActionPrevFile, []string{"pgup", "p"}, "Previous file", "playback"},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", "playback"},
	{ActionCycleSort, []string{"o"}, "Cycle sort order", "playback"},

	// Playlist
	{ActionMoveUp, []string{"k", "up"}, "Move up", "playlist"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "playlist"},
	{ActionJumpStart, []string{"g", "home"}, "First file", "playlist"},
	{ActionJumpEnd, []string{"G", "end"}, "Last file", "playlist"},
	{ActionPageUp, []string{"ctrl+u"}, "Page up", "playlist"},
	{ActionPageDown, []string{"ctrl+d"}, "Page down", "playlist"},
	{ActionSelect, []string{"enter"}, "Play file", "playlist"},
	{ActionToggleSelect, []string{"x"}, "Toggle selection", "playlist"},
	{ActionClearSelect, []string{"esc"}, "Clear selection", "playlist"},
	{ActionDelete, []string{"d", "delete"}, "Remove selected", "playlist"},
	{ActionClear, []string{"D"}, "Remove all", "playlist"},
	{ActionMoveItemUp, []string{"K", "shift+up"}, "Move file up", "playlist"},
	{ActionMoveItemDown, []string{"J", "shift+down"}, "Move file down", "playlist"},
	{ActionUndo, []string{"u", "ctrl+z"}, "Undo", "playlist"},
	{ActionRedo, []string{"U", "ctrl+y"}, "Redo", "playlist"},
	{ActionRename, []string{"ctrl+r", "F2"}, "Rename file", "playlist"},
	{ActionAddPath, []string{"a"}, "Add files", "playlist"},

	// Conversion
	{ActionExtractAudio, []string{"e"}, "Extract audio", "convert"},
	{ActionResize, []string{"z"}, "Resize video", "convert"},
	{ActionRotate, []string{"r"}, "Rotate video", "convert"},
	{ActionCancelJob, []string{"ctrl+x"}, "Cancel conversion", "convert"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Contexts lists binding contexts in help order.
func Contexts() []string {
	return []string{"global", "playback", "playlist", "convert"}
}
