package sumcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whir-go/whir/poly"
)

func feUint(v uint64) F {
	var f F
	f.SetUint64(v)
	return f
}

// TestSumcheckFoldingFactor1 mirrors spec.md scenario S1: a 2-variable
// polynomial, one round of compute_sumcheck_polynomial -> compress with
// folding randomness 4999 and combination randomness 100101, then checking
// that the next round's polynomial still satisfies the sumcheck round law
// against sigma * g(r).
func TestSumcheckFoldingFactor1(t *testing.T) {
	point := poly.MultilinearPoint{feUint(10), feUint(11)}
	coeffs := poly.NewCoefficientList([]F{feUint(1), feUint(5), feUint(10), feUint(14)})

	claimed := coeffs.Evaluate(point)

	one := feUint(1)
	prover := NewSingle(coeffs, []poly.MultilinearPoint{point}, []F{one}, []F{claimed})

	g1 := prover.ComputeSumcheckPolynomial()
	require.True(t, g1.SumOverHypercube().Equal(&claimed), "round polynomial must sum to the claimed value")

	combinationRandomness := feUint(100101)
	foldingRandomness := feUint(4999)
	prover.Compress(combinationRandomness, foldingRandomness, g1)

	g2 := prover.ComputeSumcheckPolynomial()

	atR := g1.EvaluateAt(foldingRandomness)
	var want F
	want.Mul(&combinationRandomness, &atR)

	got := g2.SumOverHypercube()
	require.True(t, got.Equal(&want), "g2(0)+g2(1) must equal combination_randomness * g1(folding_randomness)")
}

// TestEvalEqLagrangeIterator mirrors spec.md scenario S2: for z=(3,5) and
// scalar 1, the equality table equals the four Lagrange weights of z over
// {0,1}^2, as produced independently by LagrangeIterator.
func TestEvalEqLagrangeIterator(t *testing.T) {
	point := poly.MultilinearPoint{feUint(3), feUint(5)}

	out := make([]F, 4)
	one := feUint(1)
	poly.EvalEq(point, out, one)

	it := poly.NewLagrangeIterator(point)
	for {
		idx, want, ok := it.Next()
		if !ok {
			break
		}
		require.True(t, out[idx].Equal(&want), "eq table mismatch at index %d", idx)
	}
}

func TestAddNewEqualityInvariant(t *testing.T) {
	n := 3
	coeffVals := make([]F, 1<<n)
	for i := range coeffVals {
		coeffVals[i] = feUint(uint64(i + 1))
	}
	coeffs := poly.NewCoefficientList(coeffVals)

	points := []poly.MultilinearPoint{
		{feUint(2), feUint(7), feUint(9)},
		{feUint(4), feUint(1), feUint(0)},
	}
	randomness := []F{feUint(11), feUint(13)}
	evaluations := make([]F, len(points))
	for i, p := range points {
		evaluations[i] = coeffs.Evaluate(p)
	}

	s := NewSingle(coeffs, points, randomness, evaluations)

	var want F
	for i := range randomness {
		var term F
		term.Mul(&randomness[i], &evaluations[i])
		want.Add(&want, &term)
	}
	require.True(t, s.Sum().Equal(&want))
}
