// Package quiz is the practice session state machine. Reduce is a pure
// function from (State, Intent) to the next State; Controller wraps it with
// a Provider and the observers that persist and measure what happens.
package quiz

import (
	"math"

	"github.com/abhisek/littlemath/internal/problem"
)

// RewardPoints is added to the score for every correct answer.
const RewardPoints = 10

// Feedback messages shown after an answer.
const (
	MessageCorrect   = "真棒！你答对啦！🌟"
	MessageIncorrect = "哎呀，再想想看？加油！💪"
)

// Phase is derived from State; it is never stored.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseAnswered
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseAnswered:
		return "answered"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// Stats accumulate for the lifetime of a controller. They are never reset.
type Stats struct {
	Score          int `json:"score"`
	CorrectAnswers int `json:"correctAnswers"`
	TotalAttempts  int `json:"totalAttempts"`
}

// AccuracyPercent returns the rounded share of correct answers, 0 with no
// attempts.
func (s Stats) AccuracyPercent() int {
	if s.TotalAttempts == 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectAnswers) * 100 / float64(s.TotalAttempts)))
}

// Feedback is the grading result for the current problem.
type Feedback struct {
	IsCorrect bool   `json:"isCorrect"`
	Message   string `json:"message"`

	// Selected is the option the learner chose.
	Selected string `json:"selected"`
}

// State is everything a frontend needs to render a session.
type State struct {
	Category        string
	Problem         *problem.MathProblem
	Loading         bool
	Feedback        *Feedback
	ShowExplanation bool
	Stats           Stats

	// pending is the request id of the outstanding fetch, 0 when none.
	pending uint64
	// lastID is the most recently issued request id. It only grows, across
	// resets, so an id is never reused.
	lastID uint64
}

// Phase derives the current phase.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Category == "":
		return PhaseIdle
	case s.Problem == nil:
		return PhaseError
	case s.Feedback == nil:
		return PhaseReady
	default:
		return PhaseAnswered
	}
}

// Pending returns the request id the state is waiting for, 0 when none.
func (s State) Pending() uint64 {
	return s.pending
}

// awaiting reports whether an outcome for id would be applied.
func (s State) awaiting(id uint64) bool {
	return s.Loading && id != 0 && id == s.pending
}
