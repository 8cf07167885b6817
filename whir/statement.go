package whir

import (
	"fmt"

	"github.com/whir-go/whir/poly"
)

// F is the field element type shared with package poly.
type F = poly.F

// Statement is a claim that p(Points[i]) = Evaluations[i] for every i
// (spec.md §3). Both slices may be empty (they must have equal length): a
// scheme instance with no statement points still runs the folding protocol
// end to end (scenario S4).
type Statement struct {
	Points      []poly.MultilinearPoint
	Evaluations []F
}

// Validate checks the statement is well-formed against a polynomial of
// numVariables variables.
func (s Statement) Validate(numVariables int) error {
	if len(s.Points) != len(s.Evaluations) {
		return fmt.Errorf("%w: %d points but %d evaluations", ErrMalformedProof, len(s.Points), len(s.Evaluations))
	}
	for i, p := range s.Points {
		if p.NumVariables() != numVariables {
			return fmt.Errorf("%w: point %d has %d variables, want %d", ErrMalformedProof, i, p.NumVariables(), numVariables)
		}
	}
	return nil
}

// Len returns the number of claims in the statement.
func (s Statement) Len() int { return len(s.Points) }
