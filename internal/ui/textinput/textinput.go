// Package textinput provides a one-line prompt popup.
package textinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/ui"
	"github.com/llehouerou/reel/internal/ui/action"
	"github.com/llehouerou/reel/internal/ui/popup"
	"github.com/llehouerou/reel/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Model is a titled text prompt.
type Model struct {
	ui.Base
	title   string
	hint    string
	input   textinput.Model
	context any
}

// New creates a prompt with title, prefilled with initial. context is
// handed back in the Result.
func New(title, initial string, context any) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 255
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	return &Model{
		title:   title,
		hint:    "Enter: confirm, Esc: cancel",
		input:   ti,
		context: context,
	}
}

// SetHint replaces the footer hint.
func (m *Model) SetHint(hint string) {
	m.hint = hint
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(width-lipgloss.Width(m.input.Prompt)-1, 10)
}

// Value returns the current text.
func (m *Model) Value() string {
	return m.input.Value()
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, action.Cmd(Source, Result{Canceled: true, Context: m.context})
		case tea.KeyEnter:
			return m, action.Cmd(Source, Result{
				Text:    strings.TrimSpace(m.input.Value()),
				Context: m.context,
			})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.T().Primary).Render(m.title)
	return title + "\n\n" + m.input.View() + "\n\n" + styles.T().S().Subtle.Render(m.hint)
}
