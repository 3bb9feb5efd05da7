package app

import (
	"strings"

	"github.com/llehouerou/reel/internal/ui/jobbar"
	"github.com/llehouerou/reel/internal/ui/layout"
	"github.com/llehouerou/reel/internal/ui/playerbar"
	"github.com/llehouerou/reel/internal/ui/popup"
	"github.com/llehouerou/reel/internal/ui/render"
	"github.com/llehouerou/reel/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	parts := []string{m.panel.View()}
	if bar := jobbar.Render(m.jobs, m.width); bar != "" {
		parts = append(parts, bar)
	}
	if m.errorMsg != "" {
		line := render.Truncate(render.Sanitize(m.errorMsg), m.width)
		parts = append(parts, styles.T().S().Error.Render(line))
	}
	parts = append(parts, playerbar.Render(m.player, m.width, m.now))
	view := strings.Join(parts, "\n")

	if m.popup != nil {
		box := popup.Frame(m.popup.View(), layout.PopupWidth(m.width))
		view = popup.Overlay(view, box, m.width, m.height)
	}
	return view
}
