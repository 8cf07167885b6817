// Package prover orchestrates commit -> (sumcheck <-> fold <-> recommit <->
// query-openings <-> PoW) -> final polynomial, the full WHIR round loop
// (spec.md §4.F).
package prover

import (
	"fmt"

	"github.com/consensys/gnark/logger"
	"github.com/whir-go/whir/params"
	"github.com/whir-go/whir/poly"
	"github.com/whir-go/whir/sumcheck"
	"github.com/whir-go/whir/transcript"
	"github.com/whir-go/whir/whir"
)

// F is the field element type shared with package poly.
type F = poly.F

// Prover runs the WHIR protocol's prover side against a fixed round plan.
type Prover struct {
	cfg       params.Derived
	committer *whir.Committer
}

// New builds a Prover for cfg, using committer to commit every round's
// working polynomial.
func New(cfg params.Derived, committer *whir.Committer) *Prover {
	return &Prover{cfg: cfg, committer: committer}
}

// Prove runs the full protocol against tr (already holding the absorbed
// initial commitment root) and returns the resulting WhirProof.
func (p *Prover) Prove(tr *transcript.Transcript, schedule *transcript.Schedule, statement whir.Statement, witness *whir.Witness) (*whir.WhirProof, error) {
	if err := statement.Validate(p.cfg.NumVariables); err != nil {
		return nil, err
	}

	log := logger.Logger().With().
		Int("num_variables", p.cfg.NumVariables).
		Int("folding_factor", p.cfg.FoldingFactor).
		Int("num_rounds", p.cfg.NumRounds).
		Logger()
	log.Debug().Msg("starting whir prove")

	combinationRandomness, err := tr.SqueezeScalars(schedule.InitialCombination())
	if err != nil {
		return nil, fmt.Errorf("whir: squeezing initial combination randomness: %w", err)
	}

	single := sumcheck.NewSingle(witness.Coeffs, statement.Points, combinationRandomness, statement.Evaluations)

	proof := &whir.WhirProof{Rounds: make([]whir.RoundOpening, p.cfg.NumRounds)}
	currentWitness := witness

	for r := 0; r < p.cfg.NumRounds; r++ {
		round, nextWitness, err := p.runRound(tr, schedule, r, single, currentWitness)
		if err != nil {
			return nil, fmt.Errorf("whir: round %d: %w", r, err)
		}
		proof.Rounds[r] = *round
		currentWitness = nextWitness
	}

	// The final polynomial is revealed exactly as last committed (currentWitness
	// now holds the round NumRounds-1 commitment, of FinalVariables variables):
	// the verifier needs its actual coefficients to evaluate it directly at the
	// point the remaining sumcheck rounds derive, so it must not be folded any
	// further here.
	proof.FinalPoly = append([]F(nil), currentWitness.Coeffs.Coeffs()...)

	proof.FinalSumcheckPolys = make([][3]F, p.cfg.FinalSumcheckRounds)
	for j := 0; j < p.cfg.FinalSumcheckRounds; j++ {
		label := schedule.FinalSumcheck()[j]
		g := single.ComputeSumcheckPolynomial()
		evals := g.Evals()
		proof.FinalSumcheckPolys[j] = evals
		if err := tr.AbsorbScalars(label, evals[0], evals[1], evals[2]); err != nil {
			return nil, err
		}
		foldingRandomness, err := tr.SqueezeScalar(label)
		if err != nil {
			return nil, err
		}
		var one F
		one.SetOne()
		single.Compress(one, foldingRandomness, g)
	}

	if err := tr.AbsorbScalars(schedule.FinalPoly(), proof.FinalPoly...); err != nil {
		return nil, err
	}
	if _, err := tr.SqueezeBytes(schedule.FinalPoly()); err != nil {
		return nil, err
	}

	leafCount := len(currentWitness.Leaves)
	finalIndices, err := tr.SqueezeIndices(schedule.FinalQueries(), leafCount)
	if err != nil {
		return nil, err
	}
	proof.FinalQueries = currentWitness.Tree.Open(finalIndices)

	nonce, err := tr.PowGrind(schedule.FinalPowSeed(), schedule.FinalPowNonce(), p.cfg.FinalPowBits)
	if err != nil {
		return nil, err
	}
	proof.FinalPowNonce = nonce

	log.Debug().Msg("finished whir prove")
	return proof, nil
}

// runRound executes one WHIR round: folding_factor sumcheck half-rounds,
// out-of-domain queries against the folded polynomial, a fresh Reed-Solomon
// commitment, in-domain openings against the previous round's tree, PoW
// grinding, and the cross-round combination that folds everything back into
// the running sumcheck claim.
func (p *Prover) runRound(tr *transcript.Transcript, schedule *transcript.Schedule, round int, single *sumcheck.Single, currentWitness *whir.Witness) (*whir.RoundOpening, *whir.Witness, error) {
	foldingRandomness := make(poly.MultilinearPoint, p.cfg.FoldingFactor)
	sumcheckPolys := make([][3]F, p.cfg.FoldingFactor)
	sumcheckLabels := schedule.Sumcheck(round)
	for j := 0; j < p.cfg.FoldingFactor; j++ {
		label := sumcheckLabels[j]
		g := single.ComputeSumcheckPolynomial()
		evals := g.Evals()
		sumcheckPolys[j] = evals
		if err := tr.AbsorbScalars(label, evals[0], evals[1], evals[2]); err != nil {
			return nil, nil, err
		}
		r, err := tr.SqueezeScalar(label)
		if err != nil {
			return nil, nil, err
		}
		foldingRandomness[j] = r

		var one F
		one.SetOne()
		single.Compress(one, r, g)
	}

	nextCoeffs := single.EvalsP().ToCoefficients()
	nextNumVariables := nextCoeffs.NumVariables()

	oodPointLabels := schedule.OODPoint(round)
	oodEvalLabels := schedule.OODEval(round)
	oodPoints := make([]F, len(oodPointLabels))
	oodEvals := make([]F, len(oodPointLabels))
	for i := range oodPointLabels {
		c, err := tr.SqueezeScalar(oodPointLabels[i])
		if err != nil {
			return nil, nil, err
		}
		point := powersOf(c, nextNumVariables)
		y := nextCoeffs.Evaluate(point)

		oodPoints[i] = c
		oodEvals[i] = y

		if err := tr.AbsorbScalars(oodEvalLabels[i], y); err != nil {
			return nil, nil, err
		}
		if _, err := tr.SqueezeBytes(oodEvalLabels[i]); err != nil {
			return nil, nil, err
		}
	}

	nextWitness, err := p.committer.Commit(tr, schedule.Commit(round), nextCoeffs)
	if err != nil {
		return nil, nil, err
	}

	queryLabels := schedule.Queries(round)
	leafCount := len(currentWitness.Leaves)
	indices, err := tr.SqueezeIndices(queryLabels, leafCount)
	if err != nil {
		return nil, nil, err
	}
	multiPath := currentWitness.Tree.Open(indices)

	nonce, err := tr.PowGrind(schedule.PowSeed(round), schedule.PowNonce(round), p.cfg.PowBits[round])
	if err != nil {
		return nil, nil, err
	}

	sigma, err := tr.SqueezeScalar(schedule.Combination(round))
	if err != nil {
		return nil, nil, err
	}

	newPoints := make([]poly.MultilinearPoint, 0, len(oodPoints)+len(indices))
	newEvals := make([]F, 0, len(oodPoints)+len(indices))
	for i, c := range oodPoints {
		newPoints = append(newPoints, powersOf(c, nextNumVariables))
		newEvals = append(newEvals, oodEvals[i])
	}
	for i, idx := range indices {
		c := currentWitness.Domain.NextPoint(idx, p.cfg.FoldingFactor)
		queryPoint := powersOf(c, nextNumVariables)
		value := currentWitness.Domain.FoldLeaf(multiPath.Leaves[i], idx, foldingRandomness)
		newPoints = append(newPoints, queryPoint)
		newEvals = append(newEvals, value)
	}
	newRandomness := make([]F, len(newPoints))
	for i := range newRandomness {
		newRandomness[i] = sigma
	}
	single.AddNewEquality(newPoints, newRandomness, newEvals)

	return &whir.RoundOpening{
		SumcheckPolys: sumcheckPolys,
		Root:          nextWitness.Root,
		OODPoints:     oodPoints,
		OODEvals:      oodEvals,
		Queries:       multiPath,
		PowNonce:      nonce,
	}, nextWitness, nil
}

// powersOf expands a single squeezed challenge c into an n-coordinate
// multilinear point (c, c^2, c^4, ..., c^(2^(n-1))), by repeated squaring. This
// is the X_i = Y^(2^i) substitution package domain relies on: a multilinear
// polynomial evaluated at this point equals its univariate reinterpretation
// evaluated at c.
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
