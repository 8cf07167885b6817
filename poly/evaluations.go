package poly

// EvaluationsList holds the 2^n evaluations of a multilinear polynomial over
// the Boolean hypercube, little-endian indexed (see package doc).
type EvaluationsList struct {
	evals        []F
	numVariables int
}

// NewEvaluationsList wraps evals as an EvaluationsList. len(evals) must be a
// power of two.
func NewEvaluationsList(evals []F) EvaluationsList {
	n := mustLog2(len(evals))
	return EvaluationsList{evals: evals, numVariables: n}
}

// NumVariables returns n.
func (e EvaluationsList) NumVariables() int { return e.numVariables }

// NumEvals returns 2^n.
func (e EvaluationsList) NumEvals() int { return len(e.evals) }

// Evals returns the backing slice.
func (e EvaluationsList) Evals() []F { return e.evals }

// EvalsMut returns the backing slice for in-place mutation (used by the
// equality-table accumulation in package sumcheck).
func (e EvaluationsList) EvalsMut() []F { return e.evals }

// At returns the evaluation at hypercube index idx.
func (e EvaluationsList) At(idx int) F { return e.evals[idx] }

// Evaluate computes the multilinear extension of e at point. If point lies on
// the hypercube the lookup is O(1); otherwise it costs O(2^n).
func (e EvaluationsList) Evaluate(point MultilinearPoint) F {
	if point.NumVariables() != e.numVariables {
		panic("poly: point dimension does not match polynomial")
	}
	if idx, ok := point.ToHypercube(); ok {
		return e.evals[idx]
	}

	var sum F
	for idx := range e.evals {
		w := eqAt(point, idx)
		var term F
		term.Mul(&w, &e.evals[idx])
		sum.Add(&sum, &term)
	}
	return sum
}

// ToCoefficients converts e back to monomial-coefficient form via the inverse
// zeta transform (Mobius transform): butterfly with (a, b) -> (a, b-a).
func (e EvaluationsList) ToCoefficients() CoefficientList {
	coeffs := make([]F, len(e.evals))
	copy(coeffs, e.evals)
	butterfly(coeffs, func(a, b *F) {
		b.Sub(b, a)
	})
	return CoefficientList{coeffs: coeffs, numVariables: e.numVariables}
}

// eqAt evaluates eq_point(idx), the multilinear equality indicator, at the
// hypercube point named by idx, without materializing a full table.
func eqAt(point MultilinearPoint, idx int) F {
	var acc F
	acc.SetOne()
	var one F
	one.SetOne()
	for j, zj := range point {
		var term F
		if (idx>>j)&1 == 1 {
			term = zj
		} else {
			term.Sub(&one, &zj)
		}
		acc.Mul(&acc, &term)
	}
	return acc
}
