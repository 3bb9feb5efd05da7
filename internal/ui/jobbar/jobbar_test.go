package jobbar

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHeight(t *testing.T) {
	assert.Equal(t, 0, Height(0))
	assert.Equal(t, 3, Height(1))
	assert.Equal(t, 4, Height(2))
}

func TestJob_Percent(t *testing.T) {
	assert.Equal(t, 0, Job{Current: 5}.Percent(), "unknown total")
	assert.Equal(t, 42, Job{Current: 42, Total: 100}.Percent())
	assert.Equal(t, 50, Job{Current: 1, Total: 2}.Percent())
	assert.Equal(t, 100, Job{Current: 150, Total: 100}.Percent(), "capped")
}

func TestState_Active(t *testing.T) {
	s := State{Jobs: []Job{
		{ID: "a"},
		{ID: "b", Done: true},
		{ID: "c"},
	}}

	assert.Equal(t, 2, s.ActiveCount())
	assert.Equal(t, "c", s.Active()[1].ID)
}

func TestRender_NoActiveJobs(t *testing.T) {
	assert.Empty(t, Render(State{}, 80))
	assert.Empty(t, Render(State{Jobs: []Job{{Done: true}}}, 80))
}

func TestRender_Width(t *testing.T) {
	tests := []struct {
		name string
		job  Job
	}{
		{"with progress", Job{Label: "Audio: film.mkv", Detail: "0:42 2.1x", Current: 30, Total: 100}},
		{"without progress", Job{Label: "Rotate: clip.mp4", Detail: "0:03"}},
		{"without detail", Job{Label: "Resize: clip.mp4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(State{Jobs: []Job{tt.job}}, 80)
			assert.Equal(t, 80, lipgloss.Width(out))
			assert.Equal(t, 3, lipgloss.Height(out))
			assert.Contains(t, out, tt.job.Detail)
		})
	}
}

func TestRender_ShowsPercent(t *testing.T) {
	out := Render(State{Jobs: []Job{{Label: "x", Current: 42, Total: 100}}}, 60)
	assert.Contains(t, out, "42%")
}
