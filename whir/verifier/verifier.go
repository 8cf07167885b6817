// Package verifier checks a WhirProof by replaying the same transcript
// choreography the prover followed, without ever materializing the
// hypercube-sized tables the prover's sumcheck engine uses internally
// (spec.md §4.G).
package verifier

import (
	"fmt"
	"hash"

	"github.com/consensys/gnark/logger"
	"github.com/whir-go/whir/domain"
	"github.com/whir-go/whir/merkle"
	"github.com/whir-go/whir/params"
	"github.com/whir-go/whir/poly"
	"github.com/whir-go/whir/sumcheck"
	"github.com/whir-go/whir/transcript"
	"github.com/whir-go/whir/whir"
)

// F is the field element type shared with package poly.
type F = poly.F

// Verifier runs the WHIR protocol's verifier side against a fixed round
// plan.
type Verifier struct {
	cfg params.Derived
	h   hash.Hash
}

// New builds a Verifier for cfg, using h as the Merkle leaf hash (must match
// the hash the Committer used).
func New(cfg params.Derived, h hash.Hash) *Verifier {
	return &Verifier{cfg: cfg, h: h}
}

// weightedClaim tracks one term of the running equality sum w = Sum_i
// scalar_i * eq_{point_i}, at whatever dimension the claim chain currently
// holds. It is the verifier-side mirror of the evalsW table the prover's
// sumcheck.Single keeps concretely: instead of a 2^n-sized table, the
// verifier keeps O(number of claims) symbolic terms and folds each one
// variable at a time via poly.EqEval, exactly reproducing what
// sumcheck.Single.Compress does to evalsW.
type weightedClaim struct {
	point  poly.MultilinearPoint
	scalar F
}

// Verify checks proof against statement, under a transcript already primed
// with the initial commitment's root (the same tr/schedule pairing the
// prover used), returning the specific sentinel error for the first check
// that fails.
func (v *Verifier) Verify(tr *transcript.Transcript, schedule *transcript.Schedule, statement whir.Statement, initialRoot []byte, proof *whir.WhirProof) error {
	if err := statement.Validate(v.cfg.NumVariables); err != nil {
		return err
	}
	if len(proof.Rounds) != v.cfg.NumRounds {
		return fmt.Errorf("%w: expected %d rounds, got %d", whir.ErrMalformedProof, v.cfg.NumRounds, len(proof.Rounds))
	}
	if len(proof.FinalSumcheckPolys) != v.cfg.FinalSumcheckRounds {
		return fmt.Errorf("%w: expected %d final sumcheck rounds, got %d", whir.ErrMalformedProof, v.cfg.FinalSumcheckRounds, len(proof.FinalSumcheckPolys))
	}

	log := logger.Logger().With().
		Int("num_variables", v.cfg.NumVariables).
		Int("folding_factor", v.cfg.FoldingFactor).
		Int("num_rounds", v.cfg.NumRounds).
		Logger()
	log.Debug().Msg("starting whir verify")

	combinationRandomness, err := tr.SqueezeScalars(schedule.InitialCombination())
	if err != nil {
		return fmt.Errorf("whir: squeezing initial combination randomness: %w", err)
	}

	claims := make([]weightedClaim, len(statement.Points))
	var sum F
	for i, pt := range statement.Points {
		claims[i] = weightedClaim{point: pt, scalar: combinationRandomness[i]}
		var term F
		term.Mul(&combinationRandomness[i], &statement.Evaluations[i])
		sum.Add(&sum, &term)
	}

	currentRoot := initialRoot
	numVariables := v.cfg.NumVariables

	for r := 0; r < v.cfg.NumRounds; r++ {
		round := proof.Rounds[r]
		if len(round.SumcheckPolys) != v.cfg.FoldingFactor {
			return fmt.Errorf("%w: round %d has %d sumcheck polynomials, want %d", whir.ErrMalformedProof, r, len(round.SumcheckPolys), v.cfg.FoldingFactor)
		}
		if len(round.OODPoints) != v.cfg.OODQueries[r] || len(round.OODEvals) != v.cfg.OODQueries[r] {
			return fmt.Errorf("%w: round %d has malformed out-of-domain data", whir.ErrMalformedProof, r)
		}

		foldingRandomness := make(poly.MultilinearPoint, v.cfg.FoldingFactor)
		sumcheckLabels := schedule.Sumcheck(r)
		for j := 0; j < v.cfg.FoldingFactor; j++ {
			evals := round.SumcheckPolys[j]
			g := sumcheck.NewPolynomial(evals[0], evals[1], evals[2])
			if !g.SumOverHypercube().Equal(&sum) {
				return fmt.Errorf("%w: round %d half-round %d", whir.ErrSumcheckReject, r, j)
			}
			if err := tr.AbsorbScalars(sumcheckLabels[j], evals[0], evals[1], evals[2]); err != nil {
				return err
			}
			rj, err := tr.SqueezeScalar(sumcheckLabels[j])
			if err != nil {
				return err
			}
			foldingRandomness[j] = rj
			sum = g.EvaluateAt(rj)
			claims = foldClaims(claims, rj)
			numVariables--
		}
		nextNumVariables := numVariables

		oodPointLabels := schedule.OODPoint(r)
		oodEvalLabels := schedule.OODEval(r)
		oodPoints := make([]poly.MultilinearPoint, len(oodPointLabels))
		for i := range oodPointLabels {
			c, err := tr.SqueezeScalar(oodPointLabels[i])
			if err != nil {
				return err
			}
			oodPoints[i] = powersOf(c, nextNumVariables)

			if err := tr.AbsorbScalars(oodEvalLabels[i], round.OODEvals[i]); err != nil {
				return err
			}
			if _, err := tr.SqueezeBytes(oodEvalLabels[i]); err != nil {
				return err
			}
		}

		if err := tr.AbsorbBytes(schedule.Commit(r), round.Root); err != nil {
			return err
		}
		if _, err := tr.SqueezeBytes(schedule.Commit(r)); err != nil {
			return err
		}

		queryLabels := schedule.Queries(r)
		leafCount := 1 << (nextNumVariables + v.cfg.StartingLogInvRate)
		indices, err := tr.SqueezeIndices(queryLabels, leafCount)
		if err != nil {
			return err
		}
		if len(round.Queries.Leaves) != len(indices) || len(round.Queries.Indices) != len(indices) {
			return fmt.Errorf("%w: round %d has %d query openings, want %d", whir.ErrMalformedProof, r, len(round.Queries.Leaves), len(indices))
		}
		for i, idx := range indices {
			if round.Queries.Indices[i] != idx {
				return fmt.Errorf("%w: round %d query %d index mismatch", whir.ErrTranscriptDesync, r, i)
			}
		}
		if !merkle.Verify(v.h, currentRoot, round.Queries) {
			return fmt.Errorf("%w: round %d query openings", whir.ErrMerkleReject, r)
		}

		ok, err := tr.VerifyPow(schedule.PowSeed(r), schedule.PowNonce(r), v.cfg.PowBits[r], round.PowNonce)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: round %d", whir.ErrPoWReject, r)
		}

		sigma, err := tr.SqueezeScalar(schedule.Combination(r))
		if err != nil {
			return err
		}

		for i, c := range oodPoints {
			claims = append(claims, weightedClaim{point: c, scalar: sigma})
			var term F
			term.Mul(&sigma, &round.OODEvals[i])
			sum.Add(&sum, &term)
		}
		roundDomain := domain.New(nextNumVariables+v.cfg.FoldingFactor, v.cfg.StartingLogInvRate)
		for i, idx := range indices {
			c := roundDomain.NextPoint(idx, v.cfg.FoldingFactor)
			queryPoint := powersOf(c, nextNumVariables)
			value := roundDomain.FoldLeaf(round.Queries.Leaves[i], idx, foldingRandomness)
			claims = append(claims, weightedClaim{point: queryPoint, scalar: sigma})
			var term F
			term.Mul(&sigma, &value)
			sum.Add(&sum, &term)
		}

		currentRoot = round.Root
	}

	finalSumcheckLabels := schedule.FinalSumcheck()
	finalFoldingPoint := make(poly.MultilinearPoint, v.cfg.FinalSumcheckRounds)
	for j := 0; j < v.cfg.FinalSumcheckRounds; j++ {
		evals := proof.FinalSumcheckPolys[j]
		g := sumcheck.NewPolynomial(evals[0], evals[1], evals[2])
		if !g.SumOverHypercube().Equal(&sum) {
			return fmt.Errorf("%w: final half-round %d", whir.ErrSumcheckReject, j)
		}
		if err := tr.AbsorbScalars(finalSumcheckLabels[j], evals[0], evals[1], evals[2]); err != nil {
			return err
		}
		rj, err := tr.SqueezeScalar(finalSumcheckLabels[j])
		if err != nil {
			return err
		}
		finalFoldingPoint[j] = rj
		sum = g.EvaluateAt(rj)
		claims = foldClaims(claims, rj)
	}

	if len(proof.FinalPoly) != 1<<v.cfg.FinalVariables {
		return fmt.Errorf("%w: final polynomial has %d coefficients, want %d", whir.ErrMalformedProof, len(proof.FinalPoly), 1<<v.cfg.FinalVariables)
	}
	if err := tr.AbsorbScalars(schedule.FinalPoly(), proof.FinalPoly...); err != nil {
		return err
	}
	if _, err := tr.SqueezeBytes(schedule.FinalPoly()); err != nil {
		return err
	}

	finalCoeffs := poly.NewCoefficientList(proof.FinalPoly)

	// The last committed witness (FinalVariables variables) is grouped into
	// leaves the same way every round's is: by v.cfg.FoldingFactor, not
	// re-derived from a further fold. domain size / 2^folding_factor, exactly
	// what merkle.GroupLeaves produced when the prover committed it.
	finalLeafCount := 1 << (v.cfg.FinalVariables + v.cfg.StartingLogInvRate - v.cfg.FoldingFactor)
	finalIndices, err := tr.SqueezeIndices(schedule.FinalQueries(), finalLeafCount)
	if err != nil {
		return err
	}
	if len(proof.FinalQueries.Leaves) != len(finalIndices) {
		return fmt.Errorf("%w: %d final query openings, want %d", whir.ErrMalformedProof, len(proof.FinalQueries.Leaves), len(finalIndices))
	}
	for i, idx := range finalIndices {
		if proof.FinalQueries.Indices[i] != idx {
			return fmt.Errorf("%w: final query %d index mismatch", whir.ErrTranscriptDesync, i)
		}
	}
	if !merkle.Verify(v.h, currentRoot, proof.FinalQueries) {
		return fmt.Errorf("%w: final query openings", whir.ErrMerkleReject)
	}

	finalDomain := domain.New(v.cfg.FinalVariables, v.cfg.StartingLogInvRate)
	finalEvals := finalDomain.Evaluate(finalCoeffs.Coeffs())
	for i, idx := range finalIndices {
		leaf := proof.FinalQueries.Leaves[i]
		for k := range leaf {
			expected := finalEvals[idx+k*finalLeafCount]
			if !leaf[k].Equal(&expected) {
				return fmt.Errorf("%w: final query %d leaf %d", whir.ErrFoldingReject, i, k)
			}
		}
	}

	okFinal, err := tr.VerifyPow(schedule.FinalPowSeed(), schedule.FinalPowNonce(), v.cfg.FinalPowBits, proof.FinalPowNonce)
	if err != nil {
		return err
	}
	if !okFinal {
		return whir.ErrPoWReject
	}

	// Every claim's point has been folded down to zero remaining variables by
	// the round loop plus the final sumcheck half-rounds above (one variable
	// eliminated per half-round, for exactly v.cfg.NumVariables half-rounds in
	// total), so evaluateWeightedSum needs no point argument here. finalCoeffs
	// itself was never folded (it was revealed as-is), so it is evaluated
	// directly at the accumulated final folding point.
	w := evaluateWeightedSum(claims, poly.MultilinearPoint{})
	finalValue := finalCoeffs.Evaluate(finalFoldingPoint)
	var expected F
	expected.Mul(&w, &finalValue)
	if !expected.Equal(&sum) {
		return whir.ErrFinalReject
	}

	log.Debug().Msg("finished whir verify")
	return nil
}

// foldClaims eliminates one variable from every claim's point at randomness
// r, multiplying each claim's scalar by the corresponding single-coordinate
// equality factor. This mirrors exactly what sumcheck.Single.Compress does
// to its evalsW table, one claim at a time instead of one hypercube table.
func foldClaims(claims []weightedClaim, r F) []weightedClaim {
	out := make([]weightedClaim, len(claims))
	for i, c := range claims {
		factor := poly.EqEval(c.point[:1], poly.MultilinearPoint{r})
		var scalar F
		scalar.Mul(&c.scalar, &factor)
		out[i] = weightedClaim{point: c.point[1:], scalar: scalar}
	}
	return out
}

// evaluateWeightedSum returns Sum_i scalar_i * eq_{point_i}(at), where every
// claim's point has already been folded down to at's dimension (zero, by the
// time Verify calls this).
func evaluateWeightedSum(claims []weightedClaim, at poly.MultilinearPoint) F {
	var sum F
	for _, c := range claims {
		factor := poly.EqEval(c.point, at)
		var term F
		term.Mul(&c.scalar, &factor)
		sum.Add(&sum, &term)
	}
	return sum
}

// powersOf expands a single squeezed challenge c into an n-coordinate
// multilinear point (c, c^2, c^4, ..., c^(2^(n-1))) by repeated squaring,
// mirroring the prover's own sampling.
func powersOf(c F, n int) poly.MultilinearPoint {
	point := make(poly.MultilinearPoint, n)
	if n == 0 {
		return point
	}
	point[0] = c
	for i := 1; i < n; i++ {
		point[i].Square(&point[i-1])
	}
	return point
}

