// Package sumcheck implements the sumcheck engine specialized to the product
// of a multilinear polynomial p with a weighted equality sum w = Sum_i
// epsilon_i * eq_{z_i}, as used by the WHIR folding protocol (spec.md §4.C).
package sumcheck

import "github.com/whir-go/whir/poly"

// F is the field element type shared with package poly.
type F = poly.F

// Polynomial is a univariate degree-2 polynomial represented by its
// evaluations at X = 0, 1, 2.
type Polynomial struct {
	evals [3]F
}

// NewPolynomial wraps the evaluations of g at 0, 1, 2.
func NewPolynomial(at0, at1, at2 F) Polynomial {
	return Polynomial{evals: [3]F{at0, at1, at2}}
}

// Evals returns the three evaluations, in the order 0, 1, 2.
func (g Polynomial) Evals() [3]F { return g.evals }

// SumOverHypercube returns g(0) + g(1), the sumcheck round invariant.
func (g Polynomial) SumOverHypercube() F {
	var sum F
	sum.Add(&g.evals[0], &g.evals[1])
	return sum
}

// EvaluateAt evaluates g at an arbitrary field point via Lagrange
// interpolation through (0, g(0)), (1, g(1)), (2, g(2)).
func (g Polynomial) EvaluateAt(x F) F {
	// coeff_0 = g(0); g(X) = coeff_0 + coeff_1*X + coeff_2*X^2, recovered
	// from the node values the same way compute_sumcheck_polynomial built
	// them: coeff_2 = (g(2) - 2g(1) + g(0)) / 2, coeff_1 = g(1) - g(0) - coeff_2.
	var two, twoInv F
	two.SetUint64(2)
	twoInv.Inverse(&two)

	coeff0 := g.evals[0]

	var twoG1 F
	twoG1.Add(&g.evals[1], &g.evals[1])
	var coeff2 F
	coeff2.Sub(&g.evals[2], &twoG1)
	coeff2.Add(&coeff2, &g.evals[0])
	coeff2.Mul(&coeff2, &twoInv)

	var coeff1 F
	coeff1.Sub(&g.evals[1], &coeff0)
	coeff1.Sub(&coeff1, &coeff2)

	var result, xSquared, term F
	result = coeff0
	term.Mul(&coeff1, &x)
	result.Add(&result, &term)
	xSquared.Mul(&x, &x)
	term.Mul(&coeff2, &xSquared)
	result.Add(&result, &term)
	return result
}
