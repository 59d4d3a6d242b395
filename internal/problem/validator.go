package problem

import (
	"fmt"
	"unicode/utf8"
)

// Validator checks a generated problem before it is handed out.
// Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name is a short identifier used in errors and logs.
	Name() string

	// Validate returns nil if p passes.
	Validate(p *MathProblem) *ValidationError
}

// ValidationError describes why a problem was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Length limits, counted in runes.
const (
	maxQuestionLen    = 300
	maxExplanationLen = 1000
	maxOptionLen      = 60
	minOptions        = 2
	maxOptions        = 6
)

// StructuralValidator checks that the required fields are present and within
// length limits. It does not look at whether the answer is among the options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *MathProblem) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	switch {
	case p.Question == "":
		return fail("question is empty")
	case utf8.RuneCountInString(p.Question) > maxQuestionLen:
		return fail("question exceeds %d characters", maxQuestionLen)
	case p.Answer == "":
		return fail("answer is empty")
	case p.Explanation == "":
		return fail("explanation is empty")
	case utf8.RuneCountInString(p.Explanation) > maxExplanationLen:
		return fail("explanation exceeds %d characters", maxExplanationLen)
	case len(p.Options) < minOptions:
		return fail("need at least %d options, got %d", minOptions, len(p.Options))
	case len(p.Options) > maxOptions:
		return fail("at most %d options allowed, got %d", maxOptions, len(p.Options))
	}
	for i, o := range p.Options {
		if o == "" {
			return fail("option %d is empty", i+1)
		}
		if utf8.RuneCountInString(o) > maxOptionLen {
			return fail("option %d exceeds %d characters", i+1, maxOptionLen)
		}
	}
	return nil
}

// OptionsValidator requires the answer to appear exactly once among the
// options. Enabled by quiz.strict_options.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(p *MathProblem) *ValidationError {
	n := 0
	for _, o := range p.Options {
		if o == p.Answer {
			n++
		}
	}
	switch n {
	case 1:
		return nil
	case 0:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("answer %q is not among the options", p.Answer)}
	default:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("answer %q appears %d times among the options", p.Answer, n)}
	}
}
