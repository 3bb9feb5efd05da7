package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text with a horizontal color gradient from Primary to
// Secondary, blended in HCL space.
func Gradient(text string, bold bool) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return paint(clusters, bold)
}

// GradientBar renders a bar of width cells, the first filled of which use
// the gradient and the rest the subtle style.
func GradientBar(filled, width int) string {
	filled = max(min(filled, width), 0)
	cells := make([]string, filled)
	for i := range cells {
		cells[i] = "━"
	}
	return paint(cells, false) + T().S().Subtle.Render(strings.Repeat("─", width-filled))
}

func paint(clusters []string, bold bool) string {
	if len(clusters) == 0 {
		return ""
	}
	colors := blend(len(clusters), T().Primary, T().Secondary)

	var b strings.Builder
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i].Hex())).Bold(bold)
		b.WriteString(style.Render(cluster))
	}
	return b.String()
}

func blend(size int, from, to lipgloss.Color) []colorful.Color {
	c1 := toColorful(from)
	if size < 2 {
		return []colorful.Color{c1}
	}
	c2 := toColorful(to)

	colors := make([]colorful.Color, size)
	for i := range size {
		colors[i] = c1.BlendHcl(c2, float64(i)/float64(size-1)).Clamped()
	}
	return colors
}

// toColorful parses a hex lipgloss color; ANSI colors become neutral gray.
func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	gray, _ := colorful.MakeColor(color.Gray{Y: 128})
	return gray
}
