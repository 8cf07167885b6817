package poly

import "github.com/whir-go/whir/internal/parallel"

// CoefficientList holds the 2^n coefficients of a multilinear polynomial in
// the monomial basis, indexed by the bitmask of variables present in each
// monomial (see the package doc for the bit convention).
type CoefficientList struct {
	coeffs       []F
	numVariables int
}

// NewCoefficientList wraps coeffs as a CoefficientList. len(coeffs) must be a
// power of two.
func NewCoefficientList(coeffs []F) CoefficientList {
	n := mustLog2(len(coeffs))
	return CoefficientList{coeffs: coeffs, numVariables: n}
}

// NumVariables returns n.
func (c CoefficientList) NumVariables() int { return c.numVariables }

// NumCoeffs returns 2^n.
func (c CoefficientList) NumCoeffs() int { return len(c.coeffs) }

// Coeffs returns the backing slice; callers must not retain it across a Fold.
func (c CoefficientList) Coeffs() []F { return c.coeffs }

// Evaluate computes the multilinear extension of c at point, via n
// successive partial evaluations (Fold along every variable).
func (c CoefficientList) Evaluate(point MultilinearPoint) F {
	if point.NumVariables() != c.numVariables {
		panic("poly: point dimension does not match polynomial")
	}
	folded := c.Fold(point)
	return folded.coeffs[0]
}

// Fold partially evaluates c at the first point.NumVariables() variables,
// returning a CoefficientList of c.NumVariables()-point.NumVariables()
// variables representing p(r_0, ..., r_{k-1}, X_k, ..., X_{n-1}).
//
// Each of the k axes is eliminated by combining adjacent pairs
// (coeffs[2*beta], coeffs[2*beta+1]) -- the even entry is the coefficient of
// monomials not involving the eliminated variable, the odd entry the
// coefficient of monomials that do.
func (c CoefficientList) Fold(point MultilinearPoint) CoefficientList {
	k := point.NumVariables()
	if k > c.numVariables {
		panic("poly: fold point has more variables than the polynomial")
	}
	cur := c.coeffs
	for i := 0; i < k; i++ {
		r := point[i]
		half := len(cur) / 2
		next := make([]F, half)
		parallel.Execute(half, func(start, end int) {
			var tmp F
			for beta := start; beta < end; beta++ {
				tmp.Mul(&r, &cur[2*beta+1])
				next[beta].Add(&cur[2*beta], &tmp)
			}
		})
		cur = next
	}
	return CoefficientList{coeffs: cur, numVariables: c.numVariables - k}
}

// ToEvaluations converts c to evaluation form over the Boolean hypercube via
// the in-place zeta-transform butterfly: for each variable axis, every pair
// (a, b) differing only in that axis's bit becomes (a, a+b).
func (c CoefficientList) ToEvaluations() EvaluationsList {
	evals := make([]F, len(c.coeffs))
	copy(evals, c.coeffs)
	butterfly(evals, func(a, b *F) {
		b.Add(a, b)
	})
	return EvaluationsList{evals: evals, numVariables: c.numVariables}
}

// butterfly applies combine(a, b) in place to every axis-aligned pair of the
// 2^n-length slice v, one axis (stride) at a time, from the least to the most
// significant bit.
func butterfly(v []F, combine func(a, b *F)) {
	n := mustLog2(len(v))
	for axis := 0; axis < n; axis++ {
		stride := 1 << axis
		block := stride * 2
		parallel.Execute(len(v)/block, func(start, end int) {
			for blockIdx := start; blockIdx < end; blockIdx++ {
				base := blockIdx * block
				for i := 0; i < stride; i++ {
					combine(&v[base+i], &v[base+stride+i])
				}
			}
		})
	}
}

func mustLog2(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		panic("poly: length must be a power of two")
	}
	bits := 0
	for n > 1 {
		n >>= 1
		bits++
	}
	return bits
}
