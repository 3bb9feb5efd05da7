// Package helpbindings provides a scrollable popup for displaying keybindings.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/ui"
	"github.com/llehouerou/reel/internal/ui/action"
	"github.com/llehouerou/reel/internal/ui/popup"
	"github.com/llehouerou/reel/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

var categoryLabels = map[string]string{
	"global":   "Global",
	"playback": "Playback",
	"playlist": "Playlist",
	"convert":  "Conversion",
}

// chrome is the number of lines around the scrolled content: title,
// blank lines and footer.
const chrome = 4

// Model holds the state for the help bindings popup.
type Model struct {
	ui.Base
	lines  []string
	scroll int
}

// New creates a help popup listing every binding context.
func New() *Model {
	m := &Model{}
	m.lines = buildLines(keymap.Bindings)
	return m
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, action.Cmd(Source, Close{})
	case "j", "down":
		m.scroll = min(m.scroll+1, m.maxScroll())
	case "k", "up":
		m.scroll = max(m.scroll-1, 0)
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	s := styles.T().S()
	visible := m.lines[m.scroll:min(m.scroll+m.visibleHeight(), len(m.lines))]

	footer := "?/esc close"
	if m.maxScroll() > 0 {
		footer = "j/k scroll · " + footer
	}

	return s.Title.Render("Help") + "\n\n" +
		strings.Join(visible, "\n") + "\n\n" +
		s.Subtle.Render(footer)
}

func (m *Model) visibleHeight() int {
	if m.Height() == 0 {
		return len(m.lines)
	}
	return max(m.Height()-chrome, 3)
}

func (m *Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}

func keyLabel(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

func buildLines(bindings []keymap.Binding) []string {
	s := styles.T().S()
	keyStyle := lipgloss.NewStyle().Foreground(styles.T().Primary).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(styles.T().Secondary).Bold(true)

	keyStrs := lo.Map(bindings, func(b keymap.Binding, _ int) string {
		return strings.Join(lo.Map(b.Keys, func(k string, _ int) string { return keyLabel(k) }), ", ")
	})
	keyWidth := lo.Max(lo.Map(keyStrs, func(k string, _ int) int { return lipgloss.Width(k) }))

	var lines []string
	for _, ctx := range keymap.Contexts() {
		first := true
		for i, b := range bindings {
			if b.Context != ctx {
				continue
			}
			if first {
				if len(lines) > 0 {
					lines = append(lines, "")
				}
				lines = append(lines,
					headerStyle.Render(categoryLabels[ctx]),
					s.Subtle.Render(strings.Repeat("─", keyWidth+20)))
				first = false
			}
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(keyStrs[i]))
			lines = append(lines, keyStyle.Render(keyStrs[i]+pad)+"  "+s.Base.Render(b.Description))
		}
	}
	return lines
}
