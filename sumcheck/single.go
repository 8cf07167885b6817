package sumcheck

import (
	"github.com/whir-go/whir/internal/assertx"
	"github.com/whir-go/whir/internal/parallel"
	"github.com/whir-go/whir/poly"
)

// Single proves Sum_{x in {0,1}^n} p(x)*w(x) = sum, where w is the running
// weighted-equality table accumulated by AddNewEquality. It is "single"
// because, unlike a general sumcheck, the two tables are always a plain
// multilinear p against a sum of equality polynomials -- the specialization
// spec.md §1 calls out as the hardest part of the core.
type Single struct {
	evalsP       poly.EvaluationsList
	evalsW       poly.EvaluationsList
	numVariables int
	sum          F
}

// NewSingle builds the initial sumcheck state for coeffs against the
// statement (points, combinationRandomness, evaluations): w starts at zero
// and is immediately extended via AddNewEquality.
func NewSingle(coeffs poly.CoefficientList, points []poly.MultilinearPoint, combinationRandomness []F, evaluations []F) *Single {
	n := coeffs.NumVariables()
	s := &Single{
		evalsP:       coeffs.ToEvaluations(),
		evalsW:       poly.NewEvaluationsList(make([]F, 1<<n)),
		numVariables: n,
	}
	s.AddNewEquality(points, combinationRandomness, evaluations)
	return s
}

// NumVariables returns the number of variables remaining in the claim.
func (s *Single) NumVariables() int { return s.numVariables }

// Sum returns the current claimed sum.
func (s *Single) Sum() F { return s.sum }

// EvalsP returns the current hypercube evaluations of the working
// polynomial p. After k calls to Compress this is exactly the hypercube
// evaluation table of fold(p, r_0, ..., r_{k-1}), which the prover converts
// back to coefficient form to commit the next round's polynomial.
func (s *Single) EvalsP() poly.EvaluationsList { return s.evalsP }

// ComputeSumcheckPolynomial produces the round polynomial g(X) for variable 0
// of the remaining claim: g(X) = Sum_beta p(X, beta)*w(X, beta), returned as
// its evaluations at X = 0, 1, 2. Requires NumVariables() >= 1.
func (s *Single) ComputeSumcheckPolynomial() Polynomial {
	if s.numVariables < 1 {
		panic("sumcheck: compute_sumcheck_polynomial requires at least one variable")
	}

	evalsP := s.evalsP.Evals()
	evalsW := s.evalsW.Evals()
	prefixLen := 1 << (s.numVariables - 1)

	type partial struct{ c0, c2 F }
	parts := make([]partial, prefixLen)
	parallel.Execute(prefixLen, func(start, end int) {
		for beta := start; beta < end; beta++ {
			p0, p1 := evalsP[2*beta], evalsP[2*beta+1]
			w0, w1 := evalsW[2*beta], evalsW[2*beta+1]

			var p1MinusP0, w1MinusW0 F
			p1MinusP0.Sub(&p1, &p0)
			w1MinusW0.Sub(&w1, &w0)

			var c0, c2 F
			c0.Mul(&p0, &w0)
			c2.Mul(&p1MinusP0, &w1MinusW0)
			parts[beta] = partial{c0: c0, c2: c2}
		}
	})

	var coeff0, coeff2 F
	for _, pt := range parts {
		coeff0.Add(&coeff0, &pt.c0)
		coeff2.Add(&coeff2, &pt.c2)
	}

	// sum = g(0) + g(1) = 2*coeff0 + coeff1 + coeff2
	var coeff1, twoCoeff0 F
	twoCoeff0.Add(&coeff0, &coeff0)
	coeff1.Sub(&s.sum, &twoCoeff0)
	coeff1.Sub(&coeff1, &coeff2)

	eval0 := coeff0

	var eval1 F
	eval1.Add(&coeff0, &coeff1)
	eval1.Add(&eval1, &coeff2)

	var two, twoSquared, term F
	two.SetUint64(2)
	twoSquared.Mul(&two, &two)
	eval2 := coeff0
	term.Mul(&two, &coeff1)
	eval2.Add(&eval2, &term)
	term.Mul(&twoSquared, &coeff2)
	eval2.Add(&eval2, &term)

	return NewPolynomial(eval0, eval1, eval2)
}

// AddNewEquality folds points/combinationRandomness/evaluations into the
// running equality table: evalsW += sum_i combinationRandomness[i] *
// eq_{points[i]}, and sum += sum_i combinationRandomness[i]*evaluations[i].
func (s *Single) AddNewEquality(points []poly.MultilinearPoint, combinationRandomness []F, evaluations []F) {
	if len(points) != len(combinationRandomness) || len(points) != len(evaluations) {
		panic("sumcheck: points, combination randomness and evaluations must have equal length")
	}

	for i, point := range points {
		poly.EvalEq(point, s.evalsW.EvalsMut(), combinationRandomness[i])
	}

	for i := range combinationRandomness {
		var term F
		term.Mul(&combinationRandomness[i], &evaluations[i])
		s.sum.Add(&s.sum, &term)
	}

	assertx.Check(func() bool {
		var dot F
		p, w := s.evalsP.Evals(), s.evalsW.Evals()
		for i := range p {
			var term F
			term.Mul(&p[i], &w[i])
			dot.Add(&dot, &term)
		}
		return dot.Equal(&s.sum)
	}, "sum must equal <evals_p, evals_w> after add_new_equality")
}

// Compress folds variable 0 out of both tables at foldingRandomness, scales
// the new equality table by combinationRandomness (the cross-round
// combination scalar sigma; pass one inside a WHIR round where no scaling is
// needed), and updates sum to combinationRandomness * sumcheckPoly(r).
func (s *Single) Compress(combinationRandomness F, foldingRandomness F, sumcheckPoly Polynomial) {
	if s.numVariables < 1 {
		panic("sumcheck: compress requires at least one remaining variable")
	}

	var randomnessBar F
	var one F
	one.SetOne()
	randomnessBar.Sub(&one, &foldingRandomness)

	evalsP := s.evalsP.Evals()
	evalsW := s.evalsW.Evals()
	prefixLen := 1 << (s.numVariables - 1)

	nextP := make([]F, prefixLen)
	nextW := make([]F, prefixLen)
	parallel.Execute(prefixLen, func(start, end int) {
		var a, b F
		for beta := start; beta < end; beta++ {
			a.Mul(&evalsP[2*beta], &randomnessBar)
			b.Mul(&evalsP[2*beta+1], &foldingRandomness)
			nextP[beta].Add(&a, &b)

			a.Mul(&evalsW[2*beta], &randomnessBar)
			b.Mul(&evalsW[2*beta+1], &foldingRandomness)
			var eq F
			eq.Add(&a, &b)
			nextW[beta].Mul(&eq, &combinationRandomness)
		}
	})

	s.numVariables--
	s.evalsP = poly.NewEvaluationsList(nextP)
	s.evalsW = poly.NewEvaluationsList(nextW)

	atR := sumcheckPoly.EvaluateAt(foldingRandomness)
	s.sum.Mul(&combinationRandomness, &atR)
}
