// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionStop          Action = "stop"
	ActionNextFile      Action = "next_file"
	ActionPrevFile      Action = "prev_file"
	ActionToggleShuffle Action = "toggle_shuffle"
	ActionCycleSort     Action = "cycle_sort"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// Playlist actions
	ActionSelect       Action = "select"        // enter - play file under cursor
	ActionToggleSelect Action = "toggle_select" // x
	ActionClearSelect  Action = "clear_select"  // esc
	ActionDelete       Action = "delete"        // d/delete - selection or cursor
	ActionClear        Action = "clear"         // D - empty the playlist
	ActionMoveItemUp   Action = "move_item_up"  // shift+k
	ActionMoveItemDown Action = "move_item_down"
	ActionUndo         Action = "undo"
	ActionRedo         Action = "redo"
	ActionRename       Action = "rename" // ctrl+r
	ActionAddPath      Action = "add_path"

	// Conversion actions
	ActionExtractAudio Action = "extract_audio"
	ActionResize       Action = "resize"
	ActionRotate       Action = "rotate"
	ActionCancelJob    Action = "cancel_job"
)
