package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whir-go/whir/poly"
)

func feUint(v uint64) F {
	var f F
	f.SetUint64(v)
	return f
}

// evaluateUnivariate computes sum_i coeffs[i] * x^i the naive way, used as a
// ground truth independent of the NTT machinery under test.
func evaluateUnivariate(coeffs []F, x F) F {
	var acc, xPow F
	xPow.SetOne()
	for _, c := range coeffs {
		var term F
		term.Mul(&c, &xPow)
		acc.Add(&acc, &term)
		xPow.Mul(&xPow, &x)
	}
	return acc
}

func TestEvaluateMatchesUnivariateAtEveryDomainPoint(t *testing.T) {
	coeffs := []F{feUint(1), feUint(5), feUint(10), feUint(14)}
	d := New(2, 1)
	evals := d.Evaluate(coeffs)
	require.Equal(t, d.Size(), len(evals))

	padded := make([]F, d.Size())
	copy(padded, coeffs)

	var x F
	x.SetOne()
	g := d.Generator()
	for i := range evals {
		want := evaluateUnivariate(padded, x)
		require.True(t, evals[i].Equal(&want), "mismatch at domain index %d", i)
		x.Mul(&x, &g)
	}
}

// TestEvaluateHasRealRedundancy distinguishes a genuine NTT encoding from a
// zero-extended hypercube evaluation: the latter would repeat every
// 2^numVariables-sized block identically (the padding variables never appear
// in any monomial), whereas a real Reed-Solomon codeword over a larger
// smooth subgroup does not.
func TestEvaluateHasRealRedundancy(t *testing.T) {
	coeffs := []F{feUint(1), feUint(2)}
	d := New(1, 2) // domain of size 8 for a 1-variable polynomial
	evals := d.Evaluate(coeffs)
	require.Equal(t, 8, len(evals))

	distinct := map[string]bool{}
	for _, e := range evals {
		distinct[e.String()] = true
	}
	require.Greater(t, len(distinct), 2, "expected a genuine codeword, not a repeated low-order block")
}

func TestSizeAndLogSize(t *testing.T) {
	d := New(4, 2)
	require.Equal(t, 6, d.LogSize())
	require.Equal(t, 1<<6, d.Size())
	require.Equal(t, 4, d.NumVariables())
}

// TestFoldLeafMatchesNextRoundEncoding checks the leaf-fold/NextPoint pair
// against the only thing that matters: folding a query's fiber must agree
// with freshly Reed-Solomon-encoding the same polynomial after a real
// poly.CoefficientList.Fold, at the position NextPoint names.
func TestFoldLeafMatchesNextRoundEncoding(t *testing.T) {
	coeffs := []F{feUint(1), feUint(5), feUint(10), feUint(14), feUint(3), feUint(7), feUint(9), feUint(2)}
	cl := poly.NewCoefficientList(coeffs)
	foldingFactor := 1
	logInvRate := 1

	d := New(cl.NumVariables(), logInvRate)
	evals := d.Evaluate(cl.Coeffs())

	width := 1 << foldingFactor
	leafCount := len(evals) / width

	r0 := feUint(17)
	folded := cl.Fold(poly.MultilinearPoint{r0})
	nextDomain := New(folded.NumVariables(), logInvRate)
	nextEvals := nextDomain.Evaluate(folded.Coeffs())

	for l := 0; l < leafCount; l++ {
		leaf := make([]F, width)
		for j := 0; j < width; j++ {
			leaf[j] = evals[l+j*leafCount]
		}
		got := d.FoldLeaf(leaf, l, poly.MultilinearPoint{r0})
		want := nextEvals[l]
		require.True(t, got.Equal(&want), "leaf %d folds to the wrong next-round value", l)

		c := d.NextPoint(l, foldingFactor)
		nextGen := nextDomain.Generator()
		var wantC F
		wantC.Exp(nextGen, big.NewInt(int64(l)))
		require.True(t, c.Equal(&wantC), "NextPoint %d mismatch", l)
	}
}
