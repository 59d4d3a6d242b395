package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type actionMsg string

func item(label string) MenuItem {
	return MenuItem{Label: label, Action: func() tea.Cmd {
		return func() tea.Msg { return actionMsg(label) }
	}}
}

func TestMenu_Navigation(t *testing.T) {
	m := NewMenu([]MenuItem{item("a"), {Label: "b", Disabled: true}, item("c")})

	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2 (skip disabled)", m.Selected)
	}
	m, _ = m.Update(keyPress('k'))
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0 at top", m.Selected)
	}
}

func TestMenu_EnterActivates(t *testing.T) {
	m := NewMenu([]MenuItem{item("a"), item("b")})
	m, _ = m.Update(specialKey(tea.KeyDown))
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected command")
	}
	if got := cmd(); got != actionMsg("b") {
		t.Errorf("got %v, want b", got)
	}
}

func TestMenu_DigitShortcut(t *testing.T) {
	m := NewMenu([]MenuItem{item("a"), {Label: "b", Disabled: true}, item("c")})

	m, cmd := m.Update(keyPress('3'))
	if cmd == nil || cmd() != actionMsg("c") {
		t.Fatal("expected digit 3 to activate c")
	}
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}

	if _, cmd := m.Update(keyPress('2')); cmd != nil {
		t.Error("disabled item must not activate")
	}
	if _, cmd := m.Update(keyPress('9')); cmd != nil {
		t.Error("out of range digit must not activate")
	}
}

func TestMenu_View(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "加法", Hint: "80%"}, {Label: "减法"}})
	v := m.View()
	for _, want := range []string{"1. 加法", "2. 减法", "80%", "▸"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestChoices_View(t *testing.T) {
	c := Choices{Options: []string{"1", "2", "3", "4"}, Cursor: 1}
	v := c.View()
	if !strings.Contains(v, "▸ B. 2") {
		t.Errorf("cursor row not marked:\n%s", v)
	}

	c.Answered = true
	c.Answer = "3"
	c.Chosen = "2"
	v = c.View()
	if strings.Contains(v, "▸") {
		t.Error("cursor shown after answer")
	}
	if !strings.Contains(v, "C. 3  ✔") {
		t.Errorf("correct option not marked:\n%s", v)
	}
	if !strings.Contains(v, "B. 2  ✘") {
		t.Errorf("wrong pick not marked:\n%s", v)
	}
}

func TestLabel(t *testing.T) {
	if Label(0) != "A" || Label(3) != "D" {
		t.Error("unexpected letters")
	}
	if Label(7) != "8" {
		t.Errorf("Label(7) = %q", Label(7))
	}
}

func TestProgressBar(t *testing.T) {
	v := ProgressBar{Label: "加法", Percent: 0.5, ShowPercent: true, Width: 30}.View()
	if !strings.Contains(v, "50%") {
		t.Errorf("missing percent: %q", v)
	}
	if !strings.Contains(v, "█") || !strings.Contains(v, "░") {
		t.Errorf("missing bar: %q", v)
	}
}
