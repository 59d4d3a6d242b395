package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/router"
	"github.com/abhisek/littlemath/internal/store"
)

type fakeSource struct {
	summaries []store.CategorySummary
	sessions  []store.SessionEvent
	answers   []store.AnswerEvent
	err       error
}

func (f *fakeSource) AnswerSummaryByCategory(context.Context) ([]store.CategorySummary, error) {
	return f.summaries, f.err
}

func (f *fakeSource) QuerySessionEvents(context.Context, store.QueryOpts) ([]store.SessionEvent, error) {
	return f.sessions, nil
}

func (f *fakeSource) QueryAnswerEvents(context.Context, store.QueryOpts) ([]store.AnswerEvent, error) {
	return f.answers, nil
}

func sessionEvent(id, action string, correct, total int) store.SessionEvent {
	return store.SessionEvent{
		Timestamp: time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local),
		SessionEventData: store.SessionEventData{
			SessionID:      id,
			Action:         action,
			Frontend:       "tui",
			Score:          correct * 10,
			CorrectAnswers: correct,
			TotalAttempts:  total,
			DurationSecs:   125,
		},
	}
}

func answerEvent(session, question string, correct bool) store.AnswerEvent {
	learner := "3"
	if !correct {
		learner = "4"
	}
	return store.AnswerEvent{AnswerEventData: store.AnswerEventData{
		SessionID:     session,
		Category:      problem.CategoryAddition,
		Question:      question,
		CorrectAnswer: "3",
		LearnerAnswer: learner,
		Correct:       correct,
	}}
}

func loaded(t *testing.T, src Source) *HistoryScreen {
	t.Helper()
	s := New(context.Background(), src)
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	require.True(t, s.loaded)
	return s
}

func key(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	return tea.KeyPressMsg{Code: []rune(k)[0], Text: k}
}

func TestLoadKeepsOnlyFinishedSessions(t *testing.T) {
	src := &fakeSource{
		sessions: []store.SessionEvent{
			sessionEvent("b", store.SessionActionEnd, 2, 3),
			sessionEvent("b", store.SessionActionStart, 0, 0),
			sessionEvent("a", store.SessionActionEnd, 1, 1),
			sessionEvent("a", store.SessionActionStart, 0, 0),
		},
		// Newest first, as the store returns them.
		answers: []store.AnswerEvent{
			answerEvent("b", "second", false),
			answerEvent("b", "first", true),
		},
	}
	s := loaded(t, src)

	require.Len(t, s.sessions, 2)
	assert.Equal(t, "b", s.sessions[0].SessionID)
	require.Len(t, s.answers["b"], 2)
	assert.Equal(t, "first", s.answers["b"][0].Question)
}

func TestViewShowsAccuracyAndSessions(t *testing.T) {
	src := &fakeSource{
		summaries: []store.CategorySummary{{Category: problem.CategoryAddition, Attempts: 4, Correct: 3}},
		sessions:  []store.SessionEvent{sessionEvent("a", store.SessionActionEnd, 3, 4)},
	}
	s := loaded(t, src)

	view := s.View(100, 40)
	assert.Contains(t, view, "各类题目正确率")
	assert.Contains(t, view, "75%")
	assert.Contains(t, view, "3/4")
	assert.Contains(t, view, "还没有练习")
	assert.Contains(t, view, "用时 2:05")
	assert.Contains(t, view, "答对 3/4 题")
}

func TestExpandSessionShowsAnswers(t *testing.T) {
	src := &fakeSource{
		sessions: []store.SessionEvent{
			sessionEvent("b", store.SessionActionEnd, 1, 2),
			sessionEvent("a", store.SessionActionEnd, 0, 0),
		},
		answers: []store.AnswerEvent{
			answerEvent("b", "5 - 1 = ?", false),
			answerEvent("b", "1 + 2 = ?", true),
		},
	}
	s := loaded(t, src)

	assert.NotContains(t, s.View(100, 40), "1 + 2 = ?")

	s.Update(key("enter"))
	view := s.View(100, 40)
	assert.Contains(t, view, "1 + 2 = ?")
	assert.Contains(t, view, "你选 4，正确答案 3")

	s.Update(key("down"))
	assert.Equal(t, 1, s.selected)
	s.Update(key("down"))
	assert.Equal(t, 1, s.selected, "selection stays on the last session")

	s.Update(key("enter"))
	assert.Contains(t, s.View(100, 40), "这次练习没有作答记录")
}

func TestEmptyHistory(t *testing.T) {
	s := loaded(t, &fakeSource{})
	s.Update(key("enter"))
	assert.Empty(t, s.expanded)
	assert.Contains(t, s.View(100, 40), "还没有完成的练习")
}

func TestLoadError(t *testing.T) {
	s := loaded(t, &fakeSource{err: errors.New("disk gone")})
	assert.Contains(t, s.View(100, 40), "disk gone")
}

func TestEscPops(t *testing.T) {
	s := loaded(t, &fakeSource{})
	_, cmd := s.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestStoreSatisfiesSource(t *testing.T) {
	var _ Source = store.EventRepo(nil)
}
