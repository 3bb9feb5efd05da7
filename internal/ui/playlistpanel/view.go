package playlistpanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/icons"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/ui"
	"github.com/llehouerou/reel/internal/ui/render"
	"github.com/llehouerou/reel/internal/ui/styles"
)

const dateLayout = "2006-01-02 15:04"

// View renders the playlist panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	content := m.renderHeader(innerWidth) + "\n" +
		render.Separator(innerWidth) + "\n" +
		m.renderList(innerWidth, m.listHeight())

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

func (m Model) renderHeader(width int) string {
	s := styles.T().S()

	var text string
	style := s.Title
	if n := len(m.selected); n > 0 {
		text = fmt.Sprintf("Playlist [%d selected]", n)
		style = s.Selected.Bold(true)
	} else {
		text = fmt.Sprintf("Playlist (%d/%d)", m.current+1, len(m.files))
	}

	modes := m.renderModes()
	text = render.TruncateAndPad(text, max(width-lipgloss.Width(modes), 0))
	return style.Render(text) + modes
}

func (m Model) renderModes() string {
	var parts []string
	if m.shuffle {
		parts = append(parts, icons.Shuffle())
	}
	if m.order != "" {
		parts = append(parts, m.order.String())
	}
	if len(parts) == 0 {
		return ""
	}
	return styles.T().S().Muted.Render(strings.Join(parts, "  ")) + " "
}

func (m Model) renderList(width, height int) string {
	lines := make([]string, 0, height)
	for i := range height {
		idx := i + m.cursor.Offset()
		if idx >= len(m.files) {
			lines = append(lines, render.EmptyLine(width))
			continue
		}
		lines = append(lines, m.renderLine(m.files[idx], idx, width))
	}
	return strings.Join(lines, "\n")
}

// renderLine renders "▶ name            2024-01-02 10:30 ●".
func (m Model) renderLine(f media.File, idx, width int) string {
	prefix := "  "
	if idx == m.current {
		prefix = render.Pad(m.indicator(), 1) + " "
	}

	suffix := "  "
	if m.selected[f.ID] {
		suffix = " " + icons.Selected()
	}

	var date string
	if !f.Date.IsZero() {
		date = " " + f.Date.Format(dateLayout)
	}

	nameWidth := max(width-lipgloss.Width(prefix)-lipgloss.Width(suffix)-len(date), 1)
	name := render.TruncateAndPad(icons.FormatFile(f.Name, f.FullPath), nameWidth)

	return m.lineStyle(idx).Render(prefix + name + date + suffix)
}

func (m Model) indicator() string {
	if m.state == playback.StatePaused {
		return icons.Paused()
	}
	return icons.Playing()
}

func (m Model) lineStyle(idx int) lipgloss.Style {
	s := styles.T().S()
	isCursor := idx == m.cursor.Pos() && m.IsFocused()
	isCurrent := idx == m.current

	switch {
	case isCursor && isCurrent:
		return s.Cursor.Inherit(s.Playing)
	case isCursor:
		return s.Cursor
	case isCurrent:
		return s.Playing
	case m.selected[m.files[idx].ID]:
		return s.Selected
	default:
		return s.Base
	}
}
