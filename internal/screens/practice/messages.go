package practice

import "github.com/abhisek/littlemath/internal/quiz"

// FetchResultMsg carries the outcome of a provider call back to the
// screen, which dispatches it to the controller. Outcomes that arrive after
// the screen was popped are dispatched by the app instead.
type FetchResultMsg struct {
	Outcome quiz.Intent
}
