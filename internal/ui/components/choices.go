package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/littlemath/internal/ui/theme"
)

// OptionLabels are the letters shown before each option.
var OptionLabels = []string{"A", "B", "C", "D", "E", "F"}

// Choices renders the options of a multiple-choice problem. Before an
// answer the cursor row is highlighted; afterwards the correct option is
// green and a wrong pick is red.
type Choices struct {
	Options []string
	Cursor  int

	// Answer and Chosen are set once the problem is answered.
	Answered bool
	Answer   string
	Chosen   string
}

// Label returns the display letter for option i.
func Label(i int) string {
	if i >= 0 && i < len(OptionLabels) {
		return OptionLabels[i]
	}
	return fmt.Sprint(i + 1)
}

// View renders one option per line.
func (c Choices) View() string {
	lines := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		prefix := "  "
		if !c.Answered && i == c.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s. %s", prefix, Label(i), opt)

		var style lipgloss.Style
		switch {
		case c.Answered && opt == c.Answer:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
			line += "  ✔"
		case c.Answered && opt == c.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
			line += "  ✘"
		case c.Answered:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}
