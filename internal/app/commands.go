package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/playback"
)

const tickInterval = time.Minute

// TickCmd returns a command that sends TickMsg after a minute.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchServiceEvents returns a command that waits for the next playback
// service event. It listens on all subscription channels.
func (m Model) WatchServiceEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceEventMsg{Event: e}
		case e := <-sub.PlaylistChanged:
			return ServiceEventMsg{Event: e}
		case e := <-sub.CurrentChanged:
			return ServiceEventMsg{Event: e}
		case e := <-sub.Removed:
			return ServiceEventMsg{Event: e}
		case e := <-sub.OrderChanged:
			return ServiceEventMsg{Event: e}
		case e := <-sub.Renamed:
			return ServiceEventMsg{Event: e}
		case e := <-sub.ModeChanged:
			return ServiceEventMsg{Event: e}
		case e := <-sub.SelectionChanged:
			return ServiceEventMsg{Event: e}
		case e := <-sub.Error:
			return ServiceEventMsg{Event: e}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// dispatchCmd sends in to the service off the UI goroutine.
func (m Model) dispatchCmd(in playback.Intent) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.Dispatch(ctx, in); err != nil {
			return DispatchErrMsg{Op: opFor(in), Err: err}
		}
		return nil
	}
}

// notifyCmd sends a desktop notification off the UI goroutine.
func (m Model) notifyCmd(n notify.Notification) tea.Cmd {
	notifier := m.notifier
	return func() tea.Msg {
		_, err := notifier.Notify(n)
		return notifiedMsg{Err: err}
	}
}

// opFor names the operation an intent performs for error messages.
func opFor(in playback.Intent) errmsg.Op {
	switch in.(type) {
	case playback.DropFiles:
		return errmsg.OpPlaylistLoad
	case playback.Navigate, playback.SelectAbsolute:
		return errmsg.OpPlaylistSelect
	case playback.Reorder:
		return errmsg.OpPlaylistReorder
	case playback.Rename:
		return errmsg.OpPlaylistRename
	case playback.Undo, playback.Redo:
		return errmsg.OpPlaylistRestore
	default:
		return errmsg.OpPlaylistUpdate
	}
}
