package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/convert"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/ui/action"
	"github.com/llehouerou/reel/internal/ui/jobbar"
	"github.com/llehouerou/reel/internal/ui/layout"
	"github.com/llehouerou/reel/internal/ui/playerbar"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.resize()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case action.Msg:
		return m.handleAction(msg)

	case ServiceEventMsg:
		m.handleServiceEvent(msg.Event)
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		return m, tea.Quit

	case DispatchErrMsg:
		if !errors.Is(msg.Err, playback.ErrClosed) {
			m.errorMsg = errmsg.Format(msg.Op, msg.Err)
		}
		return m, nil

	case convert.ProgressMsg:
		m.setJob(msg.Job.JobBar())
		return m, msg.Next()

	case convert.DoneMsg:
		return m.handleConversionDone(msg)

	case notifiedMsg:
		if msg.Err != nil {
			m.logger.Warn("notification failed", "err", msg.Err)
		}
		return m, nil

	case TickMsg:
		m.now = time.Time(msg)
		return m, TickCmd()
	}

	// Cursor blinks and other internal messages of the open prompt
	if m.popup != nil {
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleServiceEvent mirrors the service state after any event and keeps
// the cursor on the current file when it changes.
func (m *Model) handleServiceEvent(event any) {
	m.refresh()

	switch e := event.(type) {
	case playback.CurrentChange:
		m.panel.SyncCursor()
	case playback.PlaylistChange:
		if e.Clear {
			m.panel.SyncCursor()
		}
	case playback.RenameResult:
		if e.Err != nil {
			m.errorMsg = errmsg.FormatWith(errmsg.OpPlaylistRename, e.File.Name, e.Err)
		}
	case playback.ErrorEvent:
		m.errorMsg = e.Message()
		m.logger.Warn("playback error", "op", e.Op, "path", e.Path, "err", e.Err)
	}
}

// resize lays out the panel between the bars.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	errLines := 0
	if m.errorMsg != "" {
		errLines = 1
	}
	height := layout.ContentHeight(m.height, layout.ContentOpts{
		PlayerBarHeight: playerbar.Height,
		JobBarHeight:    jobbar.Height(m.jobs.ActiveCount()),
		ErrorLines:      errLines,
	})
	m.panel.SetSize(m.width, height)
	if m.popup != nil {
		m.popup.SetSize(layout.PopupWidth(m.width), layout.PopupHeight(m.height))
	}
}
