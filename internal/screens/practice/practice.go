// Package practice is the screen where the learner answers problems for
// one category.
package practice

import (
	"context"
	"strconv"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/router"
	"github.com/abhisek/littlemath/internal/screen"
	"github.com/abhisek/littlemath/internal/ui/layout"
	"github.com/abhisek/littlemath/internal/ui/theme"
)

// PracticeScreen drives a quiz.Controller from key presses. Fetches run as
// tea commands and their outcomes come back as FetchResultMsg.
type PracticeScreen struct {
	ctx      context.Context
	ctrl     *quiz.Controller
	category problem.Category
	spinner  spinner.Model
	keys     keyMap
	cursor   int
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a practice screen for category. The controller must be idle;
// Init starts the session.
func New(ctx context.Context, ctrl *quiz.Controller, category problem.Category) *PracticeScreen {
	return &PracticeScreen{
		ctx:      ctx,
		ctrl:     ctrl,
		category: category,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
		keys: defaultKeyMap(),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.dispatch(quiz.SelectCategory{ID: s.category.ID})
}

func (s *PracticeScreen) Title() string {
	return s.category.Icon + " " + s.category.Name
}

// State returns the controller state the screen renders.
func (s *PracticeScreen) State() quiz.State {
	return s.ctrl.State()
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	st := s.ctrl.State()
	home := layout.KeyHint{Key: "Esc", Description: "返回主页"}

	switch st.Phase() {
	case quiz.PhaseReady:
		return []layout.KeyHint{
			{Key: "1-" + strconv.Itoa(len(st.Problem.Options)), Description: "作答"},
			{Key: "↑↓", Description: "选择"},
			{Key: "Enter", Description: "提交"},
			home,
		}
	case quiz.PhaseAnswered:
		hints := []layout.KeyHint{{Key: "N", Description: "下一题"}}
		if !st.Feedback.IsCorrect && !st.ShowExplanation {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "看看小老师的解析"})
		}
		return append(hints, home)
	case quiz.PhaseError:
		return []layout.KeyHint{{Key: "R", Description: "重试"}, home}
	}
	return []layout.KeyHint{home}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case FetchResultMsg:
		before := s.ctrl.State().Phase()
		s.ctrl.Dispatch(msg.Outcome)
		if s.ctrl.State().Phase() != before {
			s.cursor = 0
		}
		return s, nil

	case spinner.TickMsg:
		if !s.ctrl.State().Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if key.Matches(msg, s.keys.Home) {
		s.ctrl.Dispatch(quiz.Reset{})
		return s, router.Pop()
	}

	st := s.ctrl.State()
	switch st.Phase() {
	case quiz.PhaseReady:
		return s, s.handleChoiceKey(msg, st.Problem.Options)

	case quiz.PhaseAnswered:
		switch {
		case key.Matches(msg, s.keys.Explain):
			s.ctrl.Dispatch(quiz.RevealExplanation{})
		case key.Matches(msg, s.keys.Next):
			return s, s.dispatch(quiz.RequestNext{})
		}

	case quiz.PhaseError:
		if key.Matches(msg, s.keys.Retry) {
			return s, s.dispatch(quiz.Retry{})
		}
	}
	return s, nil
}

func (s *PracticeScreen) handleChoiceKey(msg tea.KeyPressMsg, options []string) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, s.keys.Down):
		if s.cursor < len(options)-1 {
			s.cursor++
		}
	case key.Matches(msg, s.keys.Submit):
		if s.cursor < len(options) {
			s.ctrl.Dispatch(quiz.SubmitAnswer{Option: options[s.cursor]})
		}
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(options) {
			s.cursor = n - 1
			s.ctrl.Dispatch(quiz.SubmitAnswer{Option: options[n-1]})
		}
	}
	return nil
}

// dispatch applies in and, when it issues a fetch, returns the command that
// runs it along with the spinner tick.
func (s *PracticeScreen) dispatch(in quiz.Intent) tea.Cmd {
	f := s.ctrl.Dispatch(in)
	if f == nil {
		return nil
	}
	ctrl, ctx := s.ctrl, s.ctx
	run := func() tea.Msg {
		return FetchResultMsg{Outcome: ctrl.Run(ctx, f)}
	}
	return tea.Batch(run, s.spinner.Tick)
}
