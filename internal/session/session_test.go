package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/store"
)

type fakeRepo struct {
	answers  []store.AnswerEventData
	sessions []store.SessionEventData
	err      error
}

func (f *fakeRepo) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	if f.err != nil {
		return f.err
	}
	f.answers = append(f.answers, d)
	return nil
}

func (f *fakeRepo) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	if f.err != nil {
		return f.err
	}
	f.sessions = append(f.sessions, d)
	return nil
}

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

func TestRecorder_Lifecycle(t *testing.T) {
	repo := &fakeRepo{}
	r := New(repo, FrontendTUI, nil)
	r.now = fixedClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), 90*time.Second)

	require.NoError(t, r.Start(context.Background()))
	require.Len(t, repo.sessions, 1)
	assert.Equal(t, store.SessionActionStart, repo.sessions[0].Action)
	assert.Equal(t, r.ID(), repo.sessions[0].SessionID)
	assert.Equal(t, FrontendTUI, repo.sessions[0].Frontend)

	stats := quiz.Stats{Score: 20, CorrectAnswers: 2, TotalAttempts: 3}
	sum, err := r.End(context.Background(), stats)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, sum.Duration)
	assert.Equal(t, stats, sum.Stats)

	require.Len(t, repo.sessions, 2)
	end := repo.sessions[1]
	assert.Equal(t, store.SessionActionEnd, end.Action)
	assert.Equal(t, 20, end.Score)
	assert.Equal(t, 2, end.CorrectAnswers)
	assert.Equal(t, 3, end.TotalAttempts)
	assert.Equal(t, 90, end.DurationSecs)

	_, err = r.End(context.Background(), stats)
	require.NoError(t, err)
	assert.Len(t, repo.sessions, 2, "end is recorded once")
}

func TestRecorder_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, New(nil, FrontendHTTP, nil).ID(), New(nil, FrontendHTTP, nil).ID())
}

func TestRecorder_NilRepo(t *testing.T) {
	r := New(nil, FrontendHTTP, nil)
	require.NoError(t, r.Start(context.Background()))
	r.Answered(quiz.Answer{Category: "addition"})
	_, err := r.End(context.Background(), quiz.Stats{})
	assert.NoError(t, err)
}

func TestRecorder_StartError(t *testing.T) {
	boom := errors.New("disk full")
	r := New(&fakeRepo{err: boom}, FrontendTUI, nil)
	assert.ErrorIs(t, r.Start(context.Background()), boom)
}

func TestRecorder_AnswerErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := New(&fakeRepo{err: errors.New("locked")}, FrontendTUI, zap.New(core))

	r.Answered(quiz.Answer{Category: "addition"})
	assert.Equal(t, 1, logs.FilterMessage("record answer event").Len())
}

func TestRecorder_ObservesController(t *testing.T) {
	repo := &fakeRepo{}
	rec := New(repo, FrontendTUI, nil)
	p := &problem.MathProblem{
		ID:       "p-1",
		Question: "小明有 3 元，又得到 2 元，一共有几元？",
		Options:  []string{"4元", "5元", "6元", "1元"},
		Answer:   "5元",
	}
	c := quiz.NewController(problem.ProviderFunc(func(context.Context, string) (*problem.MathProblem, error) {
		return p, nil
	}), quiz.WithObservers(rec))
	ctx := context.Background()

	c.Do(ctx, quiz.SelectCategory{ID: problem.CategoryMoney})
	c.Do(ctx, quiz.SubmitAnswer{Option: "5元"})
	c.Do(ctx, quiz.SubmitAnswer{Option: "4元"})

	require.Len(t, repo.answers, 1)
	got := repo.answers[0]
	assert.Equal(t, rec.ID(), got.SessionID)
	assert.Equal(t, problem.CategoryMoney, got.Category)
	assert.Equal(t, "p-1", got.ProblemID)
	assert.Equal(t, p.Question, got.Question)
	assert.Equal(t, "5元", got.CorrectAnswer)
	assert.Equal(t, "5元", got.LearnerAnswer)
	assert.True(t, got.Correct)
	assert.Equal(t, 10, got.ScoreAfter)
}

func TestRecorder_WithStore(t *testing.T) {
	s, err := store.Open("file:session-test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer s.Close()

	r := New(s.EventRepo(), FrontendHTTP, nil)
	ctx := context.Background()
	require.NoError(t, r.Start(ctx))
	r.Answered(quiz.Answer{Category: "shapes", Option: "三角形", Correct: false})
	_, err = r.End(ctx, quiz.Stats{TotalAttempts: 1})
	require.NoError(t, err)

	events, err := s.EventRepo().QuerySessionEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, store.SessionActionEnd, events[0].Action)

	answers, err := s.EventRepo().QueryAnswerEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "三角形", answers[0].LearnerAnswer)
}
