package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBlend_Endpoints(t *testing.T) {
	colors := blend(5, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))

	assert.Len(t, colors, 5)
	assert.Equal(t, "#000000", colors[0].Hex())
	assert.Equal(t, "#ffffff", colors[4].Hex())
}

func TestBlend_SingleCell(t *testing.T) {
	colors := blend(1, lipgloss.Color("#a78bfa"), lipgloss.Color("#f1a208"))

	assert.Len(t, colors, 1)
	assert.Equal(t, "#a78bfa", colors[0].Hex())
}

func TestToColorful_ANSIFallsBackToGray(t *testing.T) {
	assert.Equal(t, "#808080", toColorful(lipgloss.Color("240")).Hex())
}

func TestGradientBar_Width(t *testing.T) {
	for _, filled := range []int{-3, 0, 4, 10, 25} {
		bar := GradientBar(filled, 10)
		assert.Equal(t, 10, lipgloss.Width(bar), "filled=%d", filled)
	}
}

func TestGradient_KeepsText(t *testing.T) {
	assert.Empty(t, Gradient("", false))
	assert.Equal(t, 4, lipgloss.Width(Gradient("reel", true)))
}

func TestPanelStyle_FocusColor(t *testing.T) {
	assert.Equal(t, T().BorderFocus, PanelStyle(true).GetBorderTopForeground())
	assert.Equal(t, T().Border, PanelStyle(false).GetBorderTopForeground())
}
