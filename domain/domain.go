// Package domain models the Reed-Solomon evaluation domain a round's working
// polynomial is committed against (spec.md §3, §4.E): a smooth multiplicative
// subgroup of size 2^(numVariables+logInvRate) that shrinks by 2^foldingFactor
// every round, built on the teacher's own NTT domain
// (gnark-crypto/ecc/bn254/fr/fft, the same one fri.go builds its
// Reed-Solomon code on).
//
// The coefficient vector poly.CoefficientList stores (indexed, per package
// poly's bit convention, by the bitmask of variables a monomial involves)
// doubles, unmodified, as the coefficient vector of a plain univariate
// polynomial: substituting X_i = Y^(2^i) turns every multilinear monomial
// c_S * prod_{i in S} X_i into c_S * Y^mask(S), so the two representations
// read the same bytes. Zero-padding that univariate polynomial out to the
// domain's size and running a genuine NTT over fftDomain's subgroup is what
// gives the resulting codeword the Reed-Solomon code's actual minimum
// distance, rather than just restating the multilinear extension on a larger
// hypercube.
package domain

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/whir-go/whir/poly"
)

// F is the field element type shared with package poly.
type F = poly.F

// Domain is the Reed-Solomon evaluation domain for one WHIR round.
type Domain struct {
	fftDomain    *fft.Domain
	numVariables int
	logInvRate   int
}

// New builds the RS domain for a numVariables-variable polynomial at
// logInvRate redundancy bits: size 2^(numVariables+logInvRate).
func New(numVariables, logInvRate int) *Domain {
	logSize := numVariables + logInvRate
	return &Domain{
		fftDomain:    fft.NewDomain(uint64(1) << logSize),
		numVariables: numVariables,
		logInvRate:   logInvRate,
	}
}

// LogSize returns log2 of the domain's cardinality.
func (d *Domain) LogSize() int { return d.numVariables + d.logInvRate }

// Size returns the domain's cardinality.
func (d *Domain) Size() int { return 1 << d.LogSize() }

// NumVariables returns the variable count of the polynomial this domain was
// built for.
func (d *Domain) NumVariables() int { return d.numVariables }

// Generator returns the domain's multiplicative generator.
func (d *Domain) Generator() F { return d.fftDomain.Generator }

// Evaluate returns the Reed-Solomon encoding of coeffs: its univariate
// reinterpretation (see package doc), zero-padded to the domain's size and
// evaluated at every power of the domain's generator via a forward NTT
// (fft.Domain.FFT in decimation-in-frequency order, un-scrambled back to
// natural order with fft.BitReverse), exactly the transform fri.go runs over
// its own Reed-Solomon codewords. Position i of the result is q(g^i).
func (d *Domain) Evaluate(coeffs []F) []F {
	padded := make([]F, d.Size())
	copy(padded, coeffs)
	d.fftDomain.FFT(padded, fft.DIF)
	fft.BitReverse(padded)
	return padded
}

// FoldLeaf combines the 2^len(challenges) codeword values of one query's
// fiber under repeated squaring -- the values merkle.GroupLeaves placed
// together at leafIndex for this domain and folding factor -- into the
// single value the next round's codeword carries at the same leafIndex.
//
// This generalizes fri.go's single-step Lagrange-basis fold
// (foldPolynomialLagrangeBasis: p1(x^2) = (p(x)+p(-x))/2,
// p2(x^2) = (p(x)-p(-x))/(2x), result = p1 + r*p2) to len(challenges) squaring
// steps run back to back within one WHIR round, so that committing once every
// foldingFactor variables -- rather than once per variable, as plain FRI
// does -- still lets every in-domain query be checked against a single
// Merkle-authenticated leaf.
func (d *Domain) FoldLeaf(values []F, leafIndex int, challenges poly.MultilinearPoint) F {
	k := len(challenges)
	if len(values) != 1<<k {
		panic("domain: leaf size does not match folding factor")
	}

	var twoInv F
	twoInv.SetUint64(2)
	twoInv.Inverse(&twoInv)

	genInv := d.fftDomain.GeneratorInv
	sizeAtLevel := d.Size()
	stride := sizeAtLevel >> k

	cur := append([]F(nil), values...)
	for t := 0; t < k; t++ {
		half := len(cur) / 2
		next := make([]F, half)
		for j := 0; j < half; j++ {
			exponent := big.NewInt(int64((leafIndex + j*stride) % sizeAtLevel))
			var gp F
			gp.Exp(genInv, exponent)

			var p1, p2, term F
			p1.Add(&cur[j], &cur[j+half])
			p2.Sub(&cur[j], &cur[j+half])
			p2.Mul(&p2, &gp)
			term.Mul(&p2, &challenges[t])
			term.Add(&term, &p1)
			next[j].Mul(&term, &twoInv)
		}
		cur = next
		sizeAtLevel /= 2
		genInv.Square(&genInv)
	}
	return cur[0]
}

// NextPoint returns the point, in the next round's domain, that leaf index
// idx names: old_generator^(idx * 2^foldingFactor), which is exactly
// next_generator^idx since the next round's domain generator is this
// domain's generator raised to 2^foldingFactor (folding squares the
// generator once per eliminated variable, same as fri.go's gInv.Square per
// step). Raised through powersOf, this is the multilinear point an
// in-domain query's folded value is a claimed evaluation of.
func (d *Domain) NextPoint(idx, foldingFactor int) F {
	exponent := new(big.Int).Lsh(big.NewInt(int64(idx)), uint(foldingFactor))
	var c F
	c.Exp(d.Generator(), exponent)
	return c
}
