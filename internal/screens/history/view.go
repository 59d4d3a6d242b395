package history

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/store"
	"github.com/abhisek/littlemath/internal/ui/components"
	"github.com/abhisek/littlemath/internal/ui/theme"
)

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n读取记录失败：" + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n正在读取学习记录...")
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.Centered(theme.Title.Render("各类题目正确率"), width))
	b.WriteString("\n\n")
	for _, c := range problem.Categories() {
		b.WriteString(components.Centered(s.renderCategory(c, cw), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.Centered(theme.Title.Render("最近练习"), width))
	b.WriteString("\n\n")

	if len(s.sessions) == 0 {
		b.WriteString(components.Centered(theme.Hint.Render("还没有完成的练习，快去答题吧！"), width))
		return b.String()
	}

	for i, sess := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(components.Centered(style.Render(prefix+sessionLine(sess)), width))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(sess.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderCategory(c problem.Category, width int) string {
	label := fmt.Sprintf("%s %s", c.Icon, c.Name)
	sum, ok := s.summaries[c.ID]
	if !ok || sum.Attempts == 0 {
		pad := lipgloss.NewStyle().Width(width)
		return pad.Render(label + "  " + theme.Hint.Render("还没有练习"))
	}

	bar := components.ProgressBar{
		Label:       label,
		Percent:     sum.Accuracy(),
		ShowPercent: true,
		Width:       width - 10,
		Color:       theme.CategoryColor(c.Color),
	}
	return bar.View() + theme.Hint.Render(fmt.Sprintf(" %d/%d", sum.Correct, sum.Attempts))
}

func sessionLine(e store.SessionEvent) string {
	return fmt.Sprintf("%s  用时 %d:%02d  答对 %d/%d 题  ⭐ %d 分",
		e.Timestamp.Local().Format("2006-01-02 15:04"),
		e.DurationSecs/60, e.DurationSecs%60,
		e.CorrectAnswers, e.TotalAttempts, e.Score)
}

func (s *HistoryScreen) renderAnswers(sessionID string, width int) string {
	answers := s.answers[sessionID]
	if len(answers) == 0 {
		return components.Centered(theme.Hint.Render("这次练习没有作答记录"), width) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		var line string
		if a.Correct {
			line = theme.Correct.Render("✔ ") + a.Question
		} else {
			line = theme.Incorrect.Render("✘ ") + a.Question +
				theme.Hint.Render(fmt.Sprintf("  你选 %s，正确答案 %s", a.LearnerAnswer, a.CorrectAnswer))
		}
		b.WriteString(components.Centered(line, width))
		b.WriteString("\n")
	}
	return b.String()
}
