// Package poly implements multilinear polynomials in coefficient and
// evaluation form over the scalar field of bn254 (github.com/consensys/
// gnark-crypto/ecc/bn254/fr), together with the equality/Lagrange machinery
// the sumcheck engine folds against.
//
// Bit convention: every hypercube-indexed slice in this package (coefficients,
// evaluations, equality tables) is little-endian in the variables: bit j of an
// index selects variable j (0-indexed), so index i corresponds to the point
// (b0, b1, ..., b_{n-1}) with b_j = (i >> j) & 1. Folding always eliminates
// variable 0 first, combining adjacent pairs (2*beta, 2*beta+1) -- see
// CoefficientList.Fold and sumcheck.Single.Compress.
package poly

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// F is the concrete field element used throughout the WHIR core. spec.md
// treats field arithmetic as an external collaborator; fr.Element (bn254's
// scalar field) is the teacher's own concrete field type, reused rather than
// re-implemented.
type F = fr.Element

// MultilinearPoint is a point in F^n, stored one coordinate per variable in
// the same little-endian order used for hypercube indices.
type MultilinearPoint []F

// NumVariables returns n.
func (p MultilinearPoint) NumVariables() int {
	return len(p)
}

// BinaryHypercubePoint interprets idx as a point of {0,1}^n under the
// package's little-endian bit convention.
func BinaryHypercubePoint(idx, numVariables int) MultilinearPoint {
	pt := make(MultilinearPoint, numVariables)
	for j := 0; j < numVariables; j++ {
		if (idx>>j)&1 == 1 {
			pt[j].SetOne()
		}
	}
	return pt
}

// ToHypercube returns the hypercube index of p and true if every coordinate
// of p is exactly 0 or 1; otherwise it returns false.
func (p MultilinearPoint) ToHypercube() (int, bool) {
	idx := 0
	for j, c := range p {
		if c.IsZero() {
			continue
		}
		var one F
		one.SetOne()
		if !c.Equal(&one) {
			return 0, false
		}
		idx |= 1 << j
	}
	return idx, true
}

// Join returns a new point with p's coordinates followed by tail's, i.e. the
// concatenation (p, tail) read as a single point of F^{n+m}.
func (p MultilinearPoint) Join(tail MultilinearPoint) MultilinearPoint {
	out := make(MultilinearPoint, 0, len(p)+len(tail))
	out = append(out, p...)
	out = append(out, tail...)
	return out
}

func (p MultilinearPoint) String() string {
	return fmt.Sprintf("%v", []F(p))
}
