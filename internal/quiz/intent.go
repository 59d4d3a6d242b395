package quiz

import "github.com/abhisek/littlemath/internal/problem"

// Intent is an input to the state machine: a learner action or a fetch
// outcome.
type Intent interface {
	isIntent()
}

// SelectCategory starts a session for a category. Accepted only when idle.
type SelectCategory struct{ ID string }

// SubmitAnswer grades an option against the current problem. Accepted only
// when a problem is shown and not yet answered.
type SubmitAnswer struct{ Option string }

// RevealExplanation shows the explanation after an incorrect answer.
type RevealExplanation struct{}

// RequestNext fetches another problem in the same category after an answer.
type RequestNext struct{}

// Retry re-issues a failed fetch.
type Retry struct{}

// Reset returns to category selection from any phase. Stats are kept.
type Reset struct{}

// ProblemLoaded delivers a fetched problem for request RequestID.
type ProblemLoaded struct {
	RequestID uint64
	Problem   *problem.MathProblem
}

// ProblemFailed reports a failed fetch for request RequestID.
type ProblemFailed struct {
	RequestID uint64
	Err       error
}

func (SelectCategory) isIntent()    {}
func (SubmitAnswer) isIntent()      {}
func (RevealExplanation) isIntent() {}
func (RequestNext) isIntent()       {}
func (Retry) isIntent()             {}
func (Reset) isIntent()             {}
func (ProblemLoaded) isIntent()     {}
func (ProblemFailed) isIntent()     {}

// Fetch is a request for the driver to call the Provider and feed the
// outcome back with the same RequestID.
type Fetch struct {
	RequestID uint64
	Category  string
}
