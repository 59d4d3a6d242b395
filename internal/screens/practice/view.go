package practice

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/ui/components"
	"github.com/abhisek/littlemath/internal/ui/theme"
)

const (
	loadingText = "正在寻找有趣的题目..."
	errorText   = "出错了，请稍后再试。"
	tipLabel    = "💡 小贴士："
)

func (s *PracticeScreen) View(width, height int) string {
	st := s.ctrl.State()
	cw := components.ContentWidth(width)

	var body string
	switch st.Phase() {
	case quiz.PhaseLoading:
		body = s.spinner.View() + " " + theme.Body.Render(loadingText)
	case quiz.PhaseError:
		body = theme.Incorrect.Render(errorText) + "\n\n" +
			theme.Hint.Render("按 R 重试，按 Esc 返回主页")
	case quiz.PhaseReady, quiz.PhaseAnswered:
		body = s.renderProblem(st, cw)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *PracticeScreen) renderProblem(st quiz.State, width int) string {
	p := st.Problem
	accent := theme.CategoryColor(s.category.Color)

	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(p.Question)

	choices := components.Choices{
		Options: p.Options,
		Cursor:  s.cursor,
	}
	if st.Feedback != nil {
		choices.Answered = true
		choices.Answer = p.Answer
		choices.Chosen = st.Feedback.Selected
	}

	sections := []string{
		components.Card(question, width, accent),
		"",
		lipgloss.NewStyle().Width(width).Render(choices.View()),
	}

	if fb := st.Feedback; fb != nil {
		style := theme.Correct
		if !fb.IsCorrect {
			style = theme.Encourage
		}
		sections = append(sections, "", components.Centered(style.Render(fb.Message), width))

		if st.ShowExplanation {
			tip := theme.Explanation.Width(width).
				Render(theme.Title.Render(tipLabel) + "\n" + p.Explanation)
			sections = append(sections, "", tip)
		}
	}

	return strings.Join(sections, "\n")
}
