package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/ui/action"
	"github.com/llehouerou/reel/internal/ui/helpbindings"
	"github.com/llehouerou/reel/internal/ui/layout"
	"github.com/llehouerou/reel/internal/ui/playlistpanel"
	"github.com/llehouerou/reel/internal/ui/popup"
	"github.com/llehouerou/reel/internal/ui/textinput"
)

// Prompt contexts handed to textinput and back in its Result.
type (
	renamePrompt  struct{ ID string }
	addPathPrompt struct{}
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.popup != nil {
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return m, cmd
	}

	a := m.keys.Resolve(msg.String())
	if a == "" {
		return m, nil
	}
	m.errorMsg = ""

	if panel, cmd, handled := m.panel.Update(a); handled {
		m.panel = panel
		return m, cmd
	}

	switch a {
	case keymap.ActionQuit:
		m.SaveSettings()
		return m, tea.Quit
	case keymap.ActionHelp:
		return m.openPopup(helpbindings.New())
	case keymap.ActionPlayPause:
		return m, m.dispatchCmd(playback.TogglePlay{})
	case keymap.ActionStop:
		return m, m.dispatchCmd(playback.SetPlayState{State: playback.StateStopped})
	case keymap.ActionNextFile:
		return m, m.dispatchCmd(playback.Navigate{Delta: 1})
	case keymap.ActionPrevFile:
		return m, m.dispatchCmd(playback.Navigate{Delta: -1})
	case keymap.ActionToggleShuffle:
		return m, m.dispatchCmd(playback.ToggleShuffle{})
	case keymap.ActionAddPath:
		p := textinput.New("Add files", "", addPathPrompt{})
		p.SetHint("File or directory, appended to the playlist")
		return m.openPopup(p)
	case keymap.ActionExtractAudio, keymap.ActionResize, keymap.ActionRotate:
		return m.promptConversion(a)
	case keymap.ActionCancelJob:
		if !m.converter.Cancel() {
			m.errorMsg = "No conversion running"
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleAction(msg action.Msg) (Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case playlistpanel.Dispatch:
		return m, m.dispatchCmd(a.Intent)

	case playlistpanel.RenameRequest:
		p := textinput.New("Rename", filepath.Base(a.File.FullPath), renamePrompt{ID: a.File.ID})
		p.SetHint("Without an extension the current one is kept")
		return m.openPopup(p)

	case helpbindings.Close:
		m.popup = nil
		return m, nil

	case textinput.Result:
		m.popup = nil
		if a.Canceled || a.Text == "" {
			return m, nil
		}
		return m.handlePromptResult(a)
	}
	return m, nil
}

func (m Model) handlePromptResult(r textinput.Result) (Model, tea.Cmd) {
	switch ctx := r.Context.(type) {
	case renamePrompt:
		return m, m.dispatchCmd(playback.Rename{ID: ctx.ID, NewName: r.Text})
	case addPathPrompt:
		return m, m.dispatchCmd(playback.DropFiles{
			Paths:  []string{config.ExpandPath(r.Text)},
			Append: true,
		})
	case convertPrompt:
		return m.startConversion(ctx, r.Text)
	}
	return m, nil
}

func (m Model) openPopup(p popup.Popup) (Model, tea.Cmd) {
	p.SetSize(layout.PopupWidth(m.width), layout.PopupHeight(m.height))
	m.popup = p
	return m, p.Init()
}
