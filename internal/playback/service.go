package playback

import (
	"context"
	"errors"

	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/playlist"
)

var (
	// ErrClosed is returned by Dispatch after Close.
	ErrClosed = errors.New("playback service closed")
	// ErrNoMediaFiles is returned when a drop contains no playable file.
	ErrNoMediaFiles = errors.New("no playable files")
)

// Persister receives the playlist paths and current index after every
// change worth restoring. It is called from the dispatch loop and must not block.
type Persister func(paths []string, current int)

// Snapshot is a consistent view of the service state.
type Snapshot struct {
	Files    []media.File
	Index    int
	Shuffle  bool
	Order    playlist.SortOrder
	Selected []string
	State    State
}

// Service is the single owner of the playlist. Surfaces send intents and
// observe the resulting state through subscriptions.
type Service interface {
	// Dispatch validates in, queues it behind earlier intents and waits for
	// it to be applied. Intents are applied one at a time in arrival order.
	Dispatch(ctx context.Context, in Intent) error

	// Playback control shortcuts
	Play() error
	Pause() error
	Stop() error
	Toggle() error
	Next() error
	Previous() error
	SetShuffle(enabled bool) error

	// State queries
	Snapshot() Snapshot
	State() State
	Current() media.File
	CurrentIndex() int
	Files() []media.File
	Len() int
	IsEmpty() bool
	Shuffle() bool
	SortOrder() playlist.SortOrder
	SelectedIDs() []string
	CanUndo() bool
	CanRedo() bool

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

// Play starts playback when stopped or paused.
func (s *serviceImpl) Play() error {
	return s.Dispatch(context.Background(), SetPlayState{State: StatePlaying})
}

// Pause pauses playback.
func (s *serviceImpl) Pause() error {
	if s.State() != StatePlaying {
		return nil
	}
	return s.Dispatch(context.Background(), SetPlayState{State: StatePaused})
}

// Stop stops playback.
func (s *serviceImpl) Stop() error {
	return s.Dispatch(context.Background(), SetPlayState{State: StateStopped})
}

// Toggle flips between playing and paused.
func (s *serviceImpl) Toggle() error {
	return s.Dispatch(context.Background(), TogglePlay{})
}

// Next moves to the next file.
func (s *serviceImpl) Next() error {
	return s.Dispatch(context.Background(), Navigate{Delta: 1})
}

// Previous moves to the previous file.
func (s *serviceImpl) Previous() error {
	return s.Dispatch(context.Background(), Navigate{Delta: -1})
}

// SetShuffle enables or disables shuffle.
func (s *serviceImpl) SetShuffle(enabled bool) error {
	return s.Dispatch(context.Background(), SetShuffle{Enabled: enabled})
}
