// Package playerbar renders the one-line status of the current file.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/reel/internal/icons"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/ui/render"
	"github.com/llehouerou/reel/internal/ui/styles"
)

// Height is the player bar height including its border.
const Height = 3

const separator = "   "

// State holds everything needed to render the player bar.
type State struct {
	Play    playback.State
	Name    string
	Date    time.Time // modification time of the current file
	Index   int       // 0-based, -1 when nothing is current
	Total   int
	Shuffle bool
	Order   playlist.SortOrder
}

// NewState builds a State from a service snapshot.
func NewState(snap playback.Snapshot) State {
	s := State{
		Play:    snap.State,
		Index:   snap.Index,
		Total:   len(snap.Files),
		Shuffle: snap.Shuffle,
		Order:   snap.Order,
	}
	if snap.Index >= 0 && snap.Index < len(snap.Files) {
		f := snap.Files[snap.Index]
		s.Name = f.Name
		s.Date = f.Date
	}
	return s
}

// Render returns the player bar for the given width. now anchors the
// relative modification date.
func Render(s State, width int, now time.Time) string {
	innerWidth := max(width-6, 0) // border + padding
	st := styles.T().S()

	right := modes(s)
	rightWidth := lipgloss.Width(right)

	left := status(s.Play) + " "
	if s.Name == "" {
		left += st.Muted.Render("Drop files to start")
		return frame(render.Row(left, right, innerWidth), width)
	}

	var meta []string
	meta = append(meta, fmt.Sprintf("%d/%d", s.Index+1, s.Total))
	if !s.Date.IsZero() {
		meta = append(meta, "modified "+humanize.RelTime(s.Date, now, "ago", "from now"))
	}
	info := strings.Join(meta, separator)

	available := innerWidth - lipgloss.Width(left) - rightWidth - len(separator)*2 - lipgloss.Width(info)
	if available < 10 {
		info = ""
		available = innerWidth - lipgloss.Width(left) - rightWidth - len(separator)
	}

	line := left + st.Title.Render(render.Truncate(s.Name, max(available, 1)))
	if info != "" {
		line += separator + st.Muted.Render(info)
	}
	return frame(render.Row(line, right, innerWidth), width)
}

func frame(content string, width int) string {
	return styles.PanelStyle(false).Padding(0, 2).Width(max(width-2, 0)).Render(content)
}

func status(state playback.State) string {
	st := styles.T().S()
	switch state {
	case playback.StatePlaying:
		return st.Playing.Render(icons.Playing())
	case playback.StatePaused:
		return st.Muted.Render(icons.Paused())
	default:
		return st.Subtle.Render("■")
	}
}

func modes(s State) string {
	var parts []string
	if s.Shuffle {
		parts = append(parts, icons.Shuffle())
	}
	if s.Order != "" {
		parts = append(parts, strings.TrimSpace(icons.Sort()+" "+s.Order.String()))
	}
	return styles.T().S().Muted.Render(strings.Join(parts, "  "))
}
