package home

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/router"
	"github.com/abhisek/littlemath/internal/screens/history"
	"github.com/abhisek/littlemath/internal/screens/practice"
	"github.com/abhisek/littlemath/internal/store"
)

type fakeHistory struct {
	summaries []store.CategorySummary
	err       error
	calls     int
}

func (f *fakeHistory) AnswerSummaryByCategory(context.Context) ([]store.CategorySummary, error) {
	f.calls++
	return f.summaries, f.err
}

func (f *fakeHistory) QuerySessionEvents(context.Context, store.QueryOpts) ([]store.SessionEvent, error) {
	return nil, nil
}

func (f *fakeHistory) QueryAnswerEvents(context.Context, store.QueryOpts) ([]store.AnswerEvent, error) {
	return nil, nil
}

func newController() *quiz.Controller {
	return quiz.NewController(problem.ProviderFunc(func(_ context.Context, category string) (*problem.MathProblem, error) {
		return &problem.MathProblem{Question: "1 + 1 = ?", Options: []string{"1", "2"}, Answer: "2"}, nil
	}))
}

func digit(n rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: n, Text: string(n)}
}

func TestCategoryItemPushesPractice(t *testing.T) {
	h := New(Deps{Controller: newController()})

	_, cmd := h.Update(digit('2'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	scr, ok := msg.Screen.(*practice.PracticeScreen)
	require.True(t, ok)
	assert.Contains(t, scr.Title(), "20以内减法")
}

func TestMenuListsCategoriesHistoryAndQuit(t *testing.T) {
	h := New(Deps{Controller: newController()})

	require.Len(t, h.menu.Items, len(problem.Categories())+2)
	assert.True(t, h.menu.Items[len(problem.Categories())].Disabled, "history needs a source")

	_, cmd := h.Update(digit('7'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHistoryItemPushesHistory(t *testing.T) {
	h := New(Deps{Controller: newController(), History: &fakeHistory{}})

	_, cmd := h.Update(digit('6'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &history.HistoryScreen{}, msg.Screen)
}

func TestAccuracyHints(t *testing.T) {
	src := &fakeHistory{summaries: []store.CategorySummary{
		{Category: problem.CategoryShapes, Attempts: 3, Correct: 2},
	}}
	h := New(Deps{Controller: newController(), History: src})

	h.menu.Selected = 1
	cmd := h.Init()
	require.NotNil(t, cmd)
	h.Update(cmd())

	assert.Equal(t, "历史正确率 67%", h.menu.Items[2].Hint)
	assert.Empty(t, h.menu.Items[0].Hint)
	assert.Equal(t, 1, h.menu.Selected, "reload keeps the selection")
	assert.Contains(t, h.View(120, 40), "历史正确率 67%")

	src.summaries[0].Correct = 3
	h.Update(h.Resume()())
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, "历史正确率 100%", h.menu.Items[2].Hint)
}

func TestAccuracyErrorKeepsMenu(t *testing.T) {
	h := New(Deps{Controller: newController(), History: &fakeHistory{err: errors.New("locked")}})
	h.Update(h.Init()())
	assert.Len(t, h.menu.Items, len(problem.Categories())+2)
	assert.Empty(t, h.menu.Items[0].Hint)
}

func TestViewShowsStats(t *testing.T) {
	ctrl := newController()
	ctx := context.Background()
	ctrl.Do(ctx, quiz.SelectCategory{ID: problem.CategoryAddition})
	ctrl.Do(ctx, quiz.SubmitAnswer{Option: "2"})

	h := New(Deps{Controller: ctrl})
	view := h.View(120, 40)
	assert.Contains(t, view, problem.AppTitle)
	assert.Contains(t, view, "⭐ 10 分")
	assert.Contains(t, view, "正确率 100%")
	assert.Contains(t, view, "同步教材")
}

func TestNoHistoryMeansNoLoad(t *testing.T) {
	h := New(Deps{Controller: newController()})
	assert.Nil(t, h.Init())
	assert.Nil(t, h.Resume())
}
