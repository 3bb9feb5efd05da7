// Package jobbar displays long-running job progress at the bottom of the screen.
package jobbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reel/internal/ui/render"
	"github.com/llehouerou/reel/internal/ui/styles"
)

// BorderHeight is the height of borders around the job bar.
const BorderHeight = 2

const (
	indicator   = "◦ "
	minBarWidth = 10
	minLabel    = 10
)

// Height returns the total height for the given number of active jobs.
func Height(activeCount int) int {
	if activeCount == 0 {
		return 0
	}
	return activeCount + BorderHeight
}

// Job represents a single long-running job.
type Job struct {
	ID      string
	Label   string
	Detail  string // free-form status shown right of the bar, e.g. "1:02 1.8x"
	Current int
	Total   int  // 0 if unknown
	Done    bool // true if job completed
}

// HasProgress returns true if the job has known progress (Total > 0).
func (j Job) HasProgress() bool {
	return j.Total > 0
}

// Percent returns Current/Total as a whole percentage capped at 100.
func (j Job) Percent() int {
	if !j.HasProgress() {
		return 0
	}
	return min(j.Current*100/j.Total, 100)
}

// State holds the jobs to display.
type State struct {
	Jobs []Job
}

// Active returns the jobs that are not done.
func (s State) Active() []Job {
	var active []Job
	for _, j := range s.Jobs {
		if !j.Done {
			active = append(active, j)
		}
	}
	return active
}

// ActiveCount returns the number of non-completed jobs.
func (s State) ActiveCount() int {
	return len(s.Active())
}

// Render renders the active jobs framed in a panel of the given width.
// Returns empty string if there are none.
func Render(state State, width int) string {
	active := state.Active()
	if len(active) == 0 {
		return ""
	}

	innerWidth := width - 2
	lines := make([]string, len(active))
	for i, job := range active {
		lines[i] = renderLine(job, innerWidth)
	}

	return styles.PanelStyle(false).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

// renderLine renders "◦ Label  [━━━━────] 42% detail", leaving the bar out
// when progress is unknown.
func renderLine(job Job, width int) string {
	s := styles.T().S()

	right := job.Detail
	if job.HasProgress() {
		right = strings.TrimSpace(fmt.Sprintf("%3d%% %s", job.Percent(), job.Detail))
	}
	rightWidth := lipgloss.Width(right)
	fixed := lipgloss.Width(indicator) + 2 + rightWidth

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(styles.T().Primary).Render(indicator))

	if !job.HasProgress() {
		b.WriteString(s.Title.Render(render.TruncateAndPad(job.Label, max(width-fixed, minLabel))))
		if right != "" {
			b.WriteString("  ")
			b.WriteString(s.Muted.Render(right))
		}
		return b.String()
	}

	// label, "  [", bar, "] ", right
	labelWidth := max(width-fixed-minBarWidth-3, minLabel)
	barWidth := max(width-fixed-labelWidth-3, minBarWidth)

	b.WriteString(s.Title.Render(render.TruncateAndPad(job.Label, labelWidth)))
	b.WriteString("  [")
	b.WriteString(styles.GradientBar(barWidth*job.Percent()/100, barWidth))
	b.WriteString("] ")
	b.WriteString(s.Muted.Render(right))
	return b.String()
}
