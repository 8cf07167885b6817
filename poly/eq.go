package poly

import "github.com/whir-go/whir/internal/parallel"

// EvalEq adds scalar*eq_point(x) to out[x] for every hypercube point x, where
// out has length 2^len(point). Called once per (z_i, epsilon_i) pair, it is
// how an equality table accumulates Sum_i epsilon_i * eq_{z_i} in place (see
// sumcheck.Single.AddNewEquality).
//
// The recursion peels point from the end: the last remaining coordinate
// controls the top-level split of the remaining output range, so that after
// full recursion bit j of an output index lines up with point[j] -- the same
// convention CoefficientList and EvaluationsList use for their own axis j.
func EvalEq(point MultilinearPoint, out []F, scalar F) {
	if len(out) != 1<<len(point) {
		panic("poly: eq table size does not match point dimension")
	}
	evalEq(point, out, scalar)
}

func evalEq(point MultilinearPoint, out []F, scalar F) {
	n := len(point)
	if n == 0 {
		out[0].Add(&out[0], &scalar)
		return
	}

	x := point[n-1]
	tail := point[:n-1]
	low, high := out[:len(out)/2], out[len(out)/2:]

	var s1, s0 F
	s1.Mul(&scalar, &x)
	s0.Sub(&scalar, &s1)

	parallel.Join(len(out),
		func() { evalEq(tail, low, s0) },
		func() { evalEq(tail, high, s1) },
	)
}

// EqEval evaluates eq_a(b) = Prod_j (a_j*b_j + (1-a_j)*(1-b_j)) for two
// arbitrary points of the same dimension. It is the verifier-side
// counterpart of eqAt: eqAt(point, idx) is the special case where b is a
// hypercube point, needed here because the verifier must evaluate the
// weighted-equality sum at an arbitrary folding point, never materializing a
// 2^n table.
func EqEval(a, b MultilinearPoint) F {
	if len(a) != len(b) {
		panic("poly: eq_eval requires equal-dimension points")
	}
	var acc F
	acc.SetOne()
	var one F
	one.SetOne()
	for j := range a {
		var ab, notA, notB, term F
		ab.Mul(&a[j], &b[j])
		notA.Sub(&one, &a[j])
		notB.Sub(&one, &b[j])
		term.Mul(&notA, &notB)
		term.Add(&term, &ab)
		acc.Mul(&acc, &term)
	}
	return acc
}

// LagrangeIterator walks the hypercube {0,1}^n, yielding at each step the
// index and the value of eq_point at that index. It avoids materializing the
// full 2^n table when only a single pass over it is needed.
type LagrangeIterator struct {
	point MultilinearPoint
	idx   int
	limit int
}

// NewLagrangeIterator returns an iterator over eq_point on the full
// hypercube of point.NumVariables() variables.
func NewLagrangeIterator(point MultilinearPoint) *LagrangeIterator {
	return &LagrangeIterator{point: point, idx: 0, limit: 1 << point.NumVariables()}
}

// Next returns the next (index, eq_point(index)) pair and true, or
// (0, zero, false) once the hypercube is exhausted.
func (it *LagrangeIterator) Next() (int, F, bool) {
	if it.idx >= it.limit {
		var zero F
		return 0, zero, false
	}
	idx := it.idx
	it.idx++
	return idx, eqAt(it.point, idx), true
}
