package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/ui/components"
	"github.com/abhisek/littlemath/internal/ui/theme"
)

type feature struct {
	icon, title, desc string
}

var features = []feature{
	{"📚", "同步教材", "紧贴一年级教学大纲"},
	{"🏆", "趣味激励", "积分勋章奖励机制"},
	{"🤖", "AI 辅导", "Gemini 智能生成难题解析"},
}

// renderTitle returns the app title, with the subtitle unless compact.
func renderTitle(cw int, compact bool) string {
	title := theme.Title.Width(cw).Render("🧮 " + problem.AppTitle)
	if compact {
		return title
	}
	return title + "\n" + theme.Subtitle.Width(cw).Render(problem.AppSubtitle)
}

// renderStatsBar renders the running session stats in a double-border box.
func renderStatsBar(stats quiz.Stats, cw int) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	correctStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	accuracyStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	bar := fmt.Sprintf("%s   %s   %s",
		scoreStyle.Render(fmt.Sprintf("⭐ %d 分", stats.Score)),
		correctStyle.Render(fmt.Sprintf("✔ 答对 %d 题", stats.CorrectAnswers)),
		accuracyStyle.Render(fmt.Sprintf("🎯 正确率 %d%%", stats.AccuracyPercent())),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(bar)
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Render(m.View())
}

// renderFeatureCards lays the feature blurbs side by side.
func renderFeatureCards(cw int) string {
	w := cw / len(features)
	cards := make([]string, 0, len(features))
	for _, f := range features {
		body := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(f.icon+" "+f.title) +
			"\n" + theme.Hint.Render(f.desc)
		cards = append(cards, components.Card(body, w, theme.Border))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
