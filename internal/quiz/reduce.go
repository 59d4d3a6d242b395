package quiz

import "github.com/abhisek/littlemath/internal/problem"

// Reduce applies in to s. When the result needs a problem fetched it also
// returns a Fetch; otherwise the Fetch is nil. Intents that are not valid in
// the current phase leave the state unchanged.
func Reduce(s State, in Intent) (State, *Fetch) {
	switch in := in.(type) {
	case SelectCategory:
		if s.Phase() != PhaseIdle {
			return s, nil
		}
		if _, ok := problem.LookupCategory(in.ID); !ok {
			return s, nil
		}
		return startFetch(s, in.ID)

	case SubmitAnswer:
		if s.Phase() != PhaseReady {
			return s, nil
		}
		correct := in.Option == s.Problem.Answer
		s.Stats.TotalAttempts++
		fb := &Feedback{IsCorrect: correct, Message: MessageIncorrect, Selected: in.Option}
		if correct {
			s.Stats.CorrectAnswers++
			s.Stats.Score += RewardPoints
			fb.Message = MessageCorrect
		}
		s.Feedback = fb
		return s, nil

	case RevealExplanation:
		if s.Phase() != PhaseAnswered || s.Feedback.IsCorrect {
			return s, nil
		}
		s.ShowExplanation = true
		return s, nil

	case RequestNext:
		if s.Phase() != PhaseAnswered {
			return s, nil
		}
		return startFetch(s, s.Category)

	case Retry:
		if s.Phase() != PhaseError {
			return s, nil
		}
		return startFetch(s, s.Category)

	case Reset:
		s.Category = ""
		s.Problem = nil
		s.Loading = false
		s.Feedback = nil
		s.ShowExplanation = false
		s.pending = 0
		return s, nil

	case ProblemLoaded:
		if !s.awaiting(in.RequestID) {
			return s, nil
		}
		s.Loading = false
		s.pending = 0
		if in.Problem != nil {
			p := *in.Problem
			p.Category = s.Category
			s.Problem = &p
		}
		return s, nil

	case ProblemFailed:
		if !s.awaiting(in.RequestID) {
			return s, nil
		}
		s.Loading = false
		s.pending = 0
		return s, nil
	}
	return s, nil
}

// startFetch enters Loading for category with a fresh request id.
func startFetch(s State, category string) (State, *Fetch) {
	s.lastID++
	s.pending = s.lastID
	s.Category = category
	s.Loading = true
	s.Problem = nil
	s.Feedback = nil
	s.ShowExplanation = false
	return s, &Fetch{RequestID: s.pending, Category: category}
}
