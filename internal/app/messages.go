package app

import (
	"time"

	"github.com/llehouerou/reel/internal/errmsg"
)

// TickMsg refreshes relative dates in the player bar.
type TickMsg time.Time

// ServiceEventMsg carries one event received from the playback service
// subscription (a playback.*Change, RenameResult or ErrorEvent).
type ServiceEventMsg struct {
	Event any
}

// ServiceClosedMsg is sent when the playback service shuts down.
type ServiceClosedMsg struct{}

// DispatchErrMsg reports an intent the service refused.
type DispatchErrMsg struct {
	Op  errmsg.Op
	Err error
}

// notifiedMsg is returned once a desktop notification was sent.
type notifiedMsg struct {
	Err error
}
