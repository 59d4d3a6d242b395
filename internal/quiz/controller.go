package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/littlemath/internal/problem"
)

// ErrEmptyProblem is reported when a provider returns neither a problem nor
// an error.
var ErrEmptyProblem = errors.New("provider returned no problem")

// Controller owns one session State. It is safe for concurrent use: intents
// are applied one at a time, and Run may execute on any goroutine.
type Controller struct {
	mu       sync.Mutex
	state    State
	provider problem.Provider
	logger   *zap.Logger
	observer multiObserver
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l.Named("quiz")
		}
	}
}

// WithObservers adds observers, called in the given order.
func WithObservers(obs ...Observer) Option {
	return func(c *Controller) {
		c.observer = append(c.observer, obs...)
	}
}

// NewController creates an idle controller backed by p.
func NewController(p problem.Provider, opts ...Option) *Controller {
	c := &Controller{
		provider: p,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies in and returns the fetch the driver must run, if any.
func (c *Controller) Dispatch(in Intent) *Fetch {
	c.mu.Lock()
	before := c.state
	after, fetch := Reduce(before, in)
	c.state = after
	c.mu.Unlock()

	c.notify(in, before, after, fetch)
	return fetch
}

func (c *Controller) notify(in Intent, before, after State, fetch *Fetch) {
	switch in := in.(type) {
	case SubmitAnswer:
		if before.Feedback == nil && after.Feedback != nil {
			c.observer.Answered(Answer{
				Category: after.Category,
				Problem:  after.Problem,
				Option:   in.Option,
				Correct:  after.Feedback.IsCorrect,
				Stats:    after.Stats,
			})
		}
	case ProblemLoaded:
		if !before.awaiting(in.RequestID) {
			c.discarded(in.RequestID)
			break
		}
		if in.Problem != nil && in.Problem.Category != "" && in.Problem.Category != after.Category {
			c.logger.Warn("provider category differs from request",
				zap.String("category", after.Category),
				zap.String("provider_category", in.Problem.Category))
		}
		if p := after.Problem; p != nil && !p.HasAnswerOption() {
			c.logger.Warn("answer is not among the options",
				zap.String("category", after.Category),
				zap.String("problem_id", p.ID),
				zap.String("answer", p.Answer),
				zap.Strings("options", p.Options))
		}
	case ProblemFailed:
		if !before.awaiting(in.RequestID) {
			c.discarded(in.RequestID)
		}
	}

	if fetch != nil {
		c.logger.Debug("fetch issued",
			zap.Uint64("request_id", fetch.RequestID),
			zap.String("category", fetch.Category))
		c.observer.FetchStarted(*fetch)
	}
}

func (c *Controller) discarded(id uint64) {
	c.logger.Debug("stale fetch outcome discarded", zap.Uint64("request_id", id))
	c.observer.StaleDiscarded(id)
}

// Run calls the provider for f and returns the outcome intent to Dispatch.
// Provider failures, including panics, become ProblemFailed; Run never
// returns an error. A nil f yields nil.
func (c *Controller) Run(ctx context.Context, f *Fetch) Intent {
	if f == nil {
		return nil
	}

	start := time.Now()
	p, err := c.fetch(ctx, f.Category)
	if err == nil && p == nil {
		err = ErrEmptyProblem
	}
	elapsed := time.Since(start)
	c.observer.FetchFinished(*f, elapsed, err)

	if err != nil {
		c.logger.Warn("problem fetch failed",
			zap.Uint64("request_id", f.RequestID),
			zap.String("category", f.Category),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return ProblemFailed{RequestID: f.RequestID, Err: err}
	}

	c.logger.Info("problem fetched",
		zap.Uint64("request_id", f.RequestID),
		zap.String("category", f.Category),
		zap.String("problem_id", p.ID),
		zap.Duration("elapsed", elapsed))
	return ProblemLoaded{RequestID: f.RequestID, Problem: p}
}

func (c *Controller) fetch(ctx context.Context, category string) (p *problem.MathProblem, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("provider panic: %v", r)
		}
	}()
	return c.provider.Fetch(ctx, category)
}

// Do dispatches in and, if it issued a fetch, runs it and dispatches the
// outcome before returning. For synchronous drivers.
func (c *Controller) Do(ctx context.Context, in Intent) {
	if f := c.Dispatch(in); f != nil {
		c.Dispatch(c.Run(ctx, f))
	}
}
