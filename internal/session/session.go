// Package session records one practice session in the event store: a start
// event, every graded answer, and an end event with the final stats.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/store"
)

// Frontends that drive a session.
const (
	FrontendTUI  = "tui"
	FrontendHTTP = "http"
)

// EventAppender is the subset of store.EventRepo a Recorder writes to.
type EventAppender interface {
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Summary describes a finished or running session.
type Summary struct {
	SessionID string
	Frontend  string
	Duration  time.Duration
	Stats     quiz.Stats
}

// Recorder persists session events. It implements quiz.Observer so a
// controller reports answers to it directly. A nil repo records nothing.
type Recorder struct {
	quiz.NopObserver

	id       string
	frontend string
	repo     EventAppender
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	started time.Time
	ended   bool
}

// New creates a recorder with a fresh session id.
func New(repo EventAppender, frontend string, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		id:       uuid.NewString(),
		frontend: frontend,
		repo:     repo,
		logger:   logger.Named("session"),
		now:      time.Now,
	}
}

// ID returns the session id.
func (r *Recorder) ID() string {
	return r.id
}

// Start records the session start.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	r.started = r.now()
	r.mu.Unlock()

	r.logger.Info("session started", zap.String("session_id", r.id), zap.String("frontend", r.frontend))
	if r.repo == nil {
		return nil
	}
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: r.id,
		Action:    store.SessionActionStart,
		Frontend:  r.frontend,
	})
	if err != nil {
		return fmt.Errorf("record session start: %w", err)
	}
	return nil
}

// End records the session end with the final stats. Only the first call
// writes; later calls return the same summary without recording.
func (r *Recorder) End(ctx context.Context, stats quiz.Stats) (Summary, error) {
	r.mu.Lock()
	already := r.ended
	r.ended = true
	r.mu.Unlock()

	sum := r.Summary(stats)
	if already {
		return sum, nil
	}

	r.logger.Info("session ended",
		zap.String("session_id", r.id),
		zap.Int("score", stats.Score),
		zap.Int("correct", stats.CorrectAnswers),
		zap.Int("attempts", stats.TotalAttempts),
		zap.Duration("duration", sum.Duration))
	if r.repo == nil {
		return sum, nil
	}
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:      r.id,
		Action:         store.SessionActionEnd,
		Frontend:       r.frontend,
		Score:          stats.Score,
		CorrectAnswers: stats.CorrectAnswers,
		TotalAttempts:  stats.TotalAttempts,
		DurationSecs:   int(sum.Duration.Seconds()),
	})
	if err != nil {
		return sum, fmt.Errorf("record session end: %w", err)
	}
	return sum, nil
}

// Summary reports the session so far.
func (r *Recorder) Summary(stats quiz.Stats) Summary {
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()

	var d time.Duration
	if !started.IsZero() {
		d = r.now().Sub(started)
	}
	return Summary{
		SessionID: r.id,
		Frontend:  r.frontend,
		Duration:  d,
		Stats:     stats,
	}
}

// Answered records a graded answer. Store failures are logged, never
// surfaced to the learner.
func (r *Recorder) Answered(a quiz.Answer) {
	if r.repo == nil {
		return
	}
	data := store.AnswerEventData{
		SessionID:     r.id,
		Category:      a.Category,
		LearnerAnswer: a.Option,
		Correct:       a.Correct,
		ScoreAfter:    a.Stats.Score,
	}
	if a.Problem != nil {
		data.ProblemID = a.Problem.ID
		data.Question = a.Problem.Question
		data.CorrectAnswer = a.Problem.Answer
	}
	if err := r.repo.AppendAnswerEvent(context.Background(), data); err != nil {
		r.logger.Error("record answer event", zap.String("session_id", r.id), zap.Error(err))
	}
}
