package components

import (
	"image/color"
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/littlemath/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label string
	// Hint is rendered dimmed after the label.
	Hint     string
	Color    color.Color
	Action   func() tea.Cmd
	Disabled bool
}

// MenuKeyMap defines the menu key bindings.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// DefaultMenuKeyMap returns arrow/vim navigation with Enter to select.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "上移")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "下移")),
		Select: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "选择")),
	}
}

// Menu is a vertical navigation menu. Items can also be chosen with the
// digit keys 1-9.
type Menu struct {
	Items    []MenuItem
	Selected int
	Keys     MenuKeyMap
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
		Keys:     DefaultMenuKeyMap(),
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.Keys.Up):
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case key.Matches(kmsg, m.Keys.Down):
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case key.Matches(kmsg, m.Keys.Select):
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(kmsg.String()); err == nil && n >= 1 && n <= 9 {
			if n-1 < len(m.Items) && !m.Items[n-1].Disabled {
				m.Selected = n - 1
				return m, m.activate(n - 1)
			}
		}
	}

	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Action == nil || item.Disabled {
		return nil
	}
	return item.Action()
}

// View renders the menu, one numbered item per line.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		fg := theme.Text
		if item.Color != nil {
			fg = item.Color
		}
		label := strconv.Itoa(i+1) + ". " + item.Label

		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == m.Selected:
			line = lipgloss.NewStyle().Foreground(theme.BgDark).Background(fg).Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(fg).Render("   " + label)
		}
		if item.Hint != "" {
			line += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Hint)
		}
		if i > 0 {
			s += "\n"
		}
		s += line
	}
	return s
}
