package poly

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func feUint(v uint64) F {
	var f F
	f.SetUint64(v)
	return f
}

func TestEvaluateMatchesBruteForceOnHypercube(t *testing.T) {
	coeffs := []F{feUint(1), feUint(2), feUint(3), feUint(4)} // 2 variables
	cl := NewCoefficientList(coeffs)

	for idx := 0; idx < 4; idx++ {
		pt := BinaryHypercubePoint(idx, 2)
		got := cl.Evaluate(pt)

		// Brute force: sum over monomials present in idx's coefficient mask.
		var want F
		for mask, c := range coeffs {
			if mask&^idx != 0 {
				continue // monomial needs a variable that's 0 at this point
			}
			want.Add(&want, &c)
		}
		require.True(t, got.Equal(&want), "mismatch at index %d", idx)
	}
}

func TestToEvaluationsToCoefficientsRoundTrip(t *testing.T) {
	coeffs := []F{feUint(5), feUint(11), feUint(0), feUint(9), feUint(2), feUint(7), feUint(1), feUint(3)}
	cl := NewCoefficientList(coeffs)

	evals := cl.ToEvaluations()
	back := evals.ToCoefficients()

	require.Equal(t, cl.NumVariables(), back.NumVariables())
	for i, c := range cl.Coeffs() {
		got := back.Coeffs()[i]
		require.True(t, c.Equal(&got), "coefficient %d mismatch", i)
	}
}

func TestFoldMatchesEvaluateAtPrefix(t *testing.T) {
	coeffs := []F{feUint(1), feUint(5), feUint(10), feUint(14)}
	cl := NewCoefficientList(coeffs)
	r0 := feUint(7)

	folded := cl.Fold(MultilinearPoint{r0})
	require.Equal(t, 1, folded.NumVariables())

	r1 := feUint(3)
	full := cl.Evaluate(MultilinearPoint{r0, r1})
	want := folded.Evaluate(MultilinearPoint{r1})
	require.True(t, full.Equal(&want))
}

func TestEvaluationsListEvaluateOffHypercubeMatchesCoefficientList(t *testing.T) {
	coeffs := []F{feUint(2), feUint(3), feUint(5), feUint(7)}
	cl := NewCoefficientList(coeffs)
	evals := cl.ToEvaluations()

	point := MultilinearPoint{feUint(11), feUint(13)}
	want := cl.Evaluate(point)
	got := evals.Evaluate(point)
	require.True(t, got.Equal(&want))
}

func TestEqEvalMatchesEvaluationsListEvaluate(t *testing.T) {
	// eq_a(b) equals the evaluation, at b, of the evaluations list that is 1
	// at hypercube point a and 0 everywhere else.
	a := MultilinearPoint{feUint(1), feUint(0), feUint(1)}
	idx, ok := a.ToHypercube()
	require.True(t, ok)

	evals := make([]F, 8)
	evals[idx].SetOne()
	el := NewEvaluationsList(evals)

	b := MultilinearPoint{feUint(4), feUint(9), feUint(2)}
	want := el.Evaluate(b)
	got := EqEval(a, b)
	require.True(t, got.Equal(&want))
}

func TestEqEvalIsOneAtEqualHypercubePoints(t *testing.T) {
	a := BinaryHypercubePoint(5, 3)
	b := BinaryHypercubePoint(5, 3)
	got := EqEval(a, b)
	var one F
	one.SetOne()
	require.True(t, got.Equal(&one))
}

func TestEqEvalIsZeroAtDifferentHypercubePoints(t *testing.T) {
	a := BinaryHypercubePoint(5, 3)
	b := BinaryHypercubePoint(2, 3)
	got := EqEval(a, b)
	require.True(t, got.IsZero())
}

func TestJoinConcatenatesCoordinates(t *testing.T) {
	p := MultilinearPoint{feUint(1), feUint(2)}
	tail := MultilinearPoint{feUint(3)}
	joined := p.Join(tail)
	require.Equal(t, 3, joined.NumVariables())
	require.True(t, joined[0].Equal(&p[0]))
	require.True(t, joined[2].Equal(&tail[0]))
}
