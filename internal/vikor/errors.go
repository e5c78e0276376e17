package vikor

import (
	"errors"
	"strings"
)

// Error kinds. Callers match them with errors.Is.
var (
	ErrInvalidWeights = errors.New("invalid weights")
	ErrEmptyInput     = errors.New("empty input")
	ErrValidation     = errors.New("validation failed")
	ErrNoAlternatives = errors.New("no alternatives to score")
)

// ValidationError reports every problem found in an input, not just the first.
type ValidationError struct {
	Kind     error
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// Problems collects the problem lists of every ValidationError in err's tree,
// in order.
func Problems(err error) []string {
	var out []string
	collectProblems(err, &out)
	return out
}

func collectProblems(err error, out *[]string) {
	switch e := err.(type) {
	case *ValidationError:
		*out = append(*out, e.Problems...)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			collectProblems(inner, out)
		}
	case interface{ Unwrap() error }:
		collectProblems(e.Unwrap(), out)
	}
}
