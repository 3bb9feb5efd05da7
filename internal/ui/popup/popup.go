// Package popup frames modal content and draws it over the main view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/reel/internal/ui/styles"
)

// Frame wraps content in a rounded, padded border no wider than maxWidth.
func Frame(content string, maxWidth int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Padding(0, 2)

	inner := lipgloss.Width(content) + style.GetHorizontalPadding()
	if limit := maxWidth - style.GetHorizontalBorderSize(); inner > limit {
		style = style.Width(max(limit, 1))
	}
	return style.Render(content)
}

// Overlay draws box centered over base, a width x height screen.
// Base cells outside the box are kept.
func Overlay(base, box string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	boxLines := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	top := max((height-len(boxLines))/2, 0)
	left := max((width-boxWidth)/2, 0)

	for i, line := range boxLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		baseLine := padTo(baseLines[row], width)

		// Cutting through a wide character can leave either side short.
		prefix := padTo(ansi.Cut(baseLine, 0, left), left)
		suffix := ansi.Cut(baseLine, left+boxWidth, width)
		suffix = strings.Repeat(" ", max(width-left-boxWidth-ansi.StringWidth(suffix), 0)) + suffix

		baseLines[row] = prefix + padTo(line, boxWidth) + suffix
	}

	return strings.Join(baseLines, "\n")
}

func padTo(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
