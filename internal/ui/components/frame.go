package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/littlemath/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked sections so
// that boxes line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel wraps content in a double-border frame centered in the area.
func Panel(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given width.
func Card(content string, width int, border color.Color) string {
	if border == nil {
		border = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// Centered renders s centered within width.
func Centered(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
