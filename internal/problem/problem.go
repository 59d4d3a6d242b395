// Package problem defines math problems, the fixed category catalog and the
// providers that generate problems for a category.
package problem

import "context"

// MathProblem is one multiple-choice problem. It is never modified after
// it is received from a Provider.
type MathProblem struct {
	// ID is an opaque identifier. Providers may leave it empty.
	ID string `json:"id"`

	// Question is the text shown to the learner.
	Question string `json:"question"`

	// Options are the choices in display order, four in practice.
	Options []string `json:"options"`

	// Answer is the exact text of the correct option. Grading compares
	// strings exactly with no normalization.
	Answer string `json:"answer"`

	// Explanation is a child-friendly worked solution.
	Explanation string `json:"explanation"`

	// Category is the category id the problem was generated for.
	Category string `json:"category"`
}

// HasAnswerOption reports whether Answer is one of Options.
func (p *MathProblem) HasAnswerOption() bool {
	for _, o := range p.Options {
		if o == p.Answer {
			return true
		}
	}
	return false
}

// AnswerIndex returns the index of the first option equal to Answer, or -1.
func (p *MathProblem) AnswerIndex() int {
	for i, o := range p.Options {
		if o == p.Answer {
			return i
		}
	}
	return -1
}

// Provider produces one problem for a category. Fetch may block on the
// network. Any transport, parse or validation failure is returned as an
// error; callers treat all of them alike.
type Provider interface {
	Fetch(ctx context.Context, category string) (*MathProblem, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, category string) (*MathProblem, error)

func (f ProviderFunc) Fetch(ctx context.Context, category string) (*MathProblem, error) {
	return f(ctx, category)
}
