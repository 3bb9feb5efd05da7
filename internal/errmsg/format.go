// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playlist operations
	OpPlaylistLoad    Op = "load files"
	OpPlaylistSelect  Op = "select file"
	OpPlaylistReorder Op = "move file"
	OpPlaylistRename  Op = "rename file"
	OpPlaylistRestore Op = "restore playlist"
	OpPlaylistUpdate  Op = "update playlist"

	// Session operations
	OpSessionLoad Op = "load session"
	OpSessionSave Op = "save session"

	// Settings operations
	OpSettingsLoad Op = "load settings"
	OpSettingsSave Op = "save settings"

	// Conversion operations
	OpConvertStart  Op = "start conversion"
	OpConvertRun    Op = "convert file"
	OpConvertCancel Op = "cancel conversion"

	// File watching
	OpWatchFiles Op = "watch files"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
