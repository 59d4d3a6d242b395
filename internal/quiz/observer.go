package quiz

import (
	"time"

	"github.com/abhisek/littlemath/internal/problem"
)

// Answer describes one graded submission.
type Answer struct {
	Category string
	Problem  *problem.MathProblem
	Option   string
	Correct  bool

	// Stats are the totals after this answer.
	Stats Stats
}

// Observer receives controller events. Hooks run after the state lock is
// released, on the goroutine that triggered them.
type Observer interface {
	FetchStarted(f Fetch)
	FetchFinished(f Fetch, elapsed time.Duration, err error)
	Answered(a Answer)
	StaleDiscarded(requestID uint64)
}

// NopObserver implements Observer with no-ops. Embed it to implement a
// subset of hooks.
type NopObserver struct{}

func (NopObserver) FetchStarted(Fetch)                         {}
func (NopObserver) FetchFinished(Fetch, time.Duration, error) {}
func (NopObserver) Answered(Answer)                            {}
func (NopObserver) StaleDiscarded(uint64)                      {}

type multiObserver []Observer

func (m multiObserver) FetchStarted(f Fetch) {
	for _, o := range m {
		o.FetchStarted(f)
	}
}

func (m multiObserver) FetchFinished(f Fetch, elapsed time.Duration, err error) {
	for _, o := range m {
		o.FetchFinished(f, elapsed, err)
	}
}

func (m multiObserver) Answered(a Answer) {
	for _, o := range m {
		o.Answered(a)
	}
}

func (m multiObserver) StaleDiscarded(id uint64) {
	for _, o := range m {
		o.StaleDiscarded(id)
	}
}
