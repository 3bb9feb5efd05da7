package playlistpanel

import (
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/playback"
)

// Source is the action source name of the playlist panel.
const Source = "playlistpanel"

// Dispatch asks the app to send an intent to the playback service.
type Dispatch struct {
	Intent playback.Intent
}

// ActionType implements action.Action.
func (a Dispatch) ActionType() string { return "playlistpanel.dispatch" }

// RenameRequest asks the app to prompt for a new name for File.
type RenameRequest struct {
	File media.File
}

// ActionType implements action.Action.
func (a RenameRequest) ActionType() string { return "playlistpanel.rename_request" }
