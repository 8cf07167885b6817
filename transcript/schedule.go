package transcript

import (
	"fmt"

	"github.com/whir-go/whir/params"
)

// Schedule is the pre-declared, ordered list of Fiat-Shamir labels a WHIR
// run will ever touch, derived deterministically from the round plan and
// the statement size so prover and verifier build byte-identical
// schedules. This plays the role nimue's IOPattern plays in the upstream
// source: the absorb/squeeze choreography is fixed before a single byte is
// absorbed.
type Schedule struct {
	derived       params.Derived
	numStatements int

	initialCommit       string
	initialCombination []string
	rounds              []roundLabels
	finalSumcheck       []string
	finalPoly           string
	finalQueries        []string
	finalPowSeed        string
	finalPowNonce       string
}

type roundLabels struct {
	sumcheck     []string
	oodPoint     []string
	oodEval      []string
	commit       string
	queries      []string
	powSeed      string
	powNonce     string
	combination  string
}

// BuildSchedule derives the full label schedule for a round plan and a
// statement of numStatements points.
func BuildSchedule(derived params.Derived, numStatements int) *Schedule {
	s := &Schedule{derived: derived, numStatements: numStatements}

	s.initialCommit = "whir/initial/commit"
	s.initialCombination = make([]string, numStatements)
	for i := range s.initialCombination {
		s.initialCombination[i] = fmt.Sprintf("whir/initial/combination/%d", i)
	}

	s.rounds = make([]roundLabels, derived.NumRounds)
	for r := range s.rounds {
		rl := roundLabels{
			sumcheck: make([]string, derived.FoldingFactor),
			oodPoint: make([]string, derived.OODQueries[r]),
			oodEval:  make([]string, derived.OODQueries[r]),
			queries:  make([]string, derived.InDomainQueries[r]),
			commit:      fmt.Sprintf("whir/round/%d/commit", r),
			powSeed:     fmt.Sprintf("whir/round/%d/pow-seed", r),
			powNonce:    fmt.Sprintf("whir/round/%d/pow-nonce", r),
			combination: fmt.Sprintf("whir/round/%d/combination", r),
		}
		for j := range rl.sumcheck {
			rl.sumcheck[j] = fmt.Sprintf("whir/round/%d/sumcheck/%d", r, j)
		}
		for i := range rl.oodPoint {
			rl.oodPoint[i] = fmt.Sprintf("whir/round/%d/ood-point/%d", r, i)
			rl.oodEval[i] = fmt.Sprintf("whir/round/%d/ood-eval/%d", r, i)
		}
		for i := range rl.queries {
			rl.queries[i] = fmt.Sprintf("whir/round/%d/query/%d", r, i)
		}
		s.rounds[r] = rl
	}

	s.finalSumcheck = make([]string, derived.FinalSumcheckRounds)
	for j := range s.finalSumcheck {
		s.finalSumcheck[j] = fmt.Sprintf("whir/final/sumcheck/%d", j)
	}
	s.finalPoly = "whir/final/poly"
	s.finalQueries = make([]string, derived.FinalQueries)
	for i := range s.finalQueries {
		s.finalQueries[i] = fmt.Sprintf("whir/final/query/%d", i)
	}
	s.finalPowSeed = "whir/final/pow-seed"
	s.finalPowNonce = "whir/final/pow-nonce"

	return s
}

// InitialCommit returns the label for absorbing the root of the statement's
// own (un-folded) commitment, absorbed by the Committer before Prove/Verify
// are ever invoked.
func (s *Schedule) InitialCommit() string { return s.initialCommit }

// InitialCombination returns the labels for the initial combination
// randomness, one per statement point.
func (s *Schedule) InitialCombination() []string { return s.initialCombination }

// Sumcheck returns the labels for round r's k sumcheck half-rounds.
func (s *Schedule) Sumcheck(round int) []string { return s.rounds[round].sumcheck }

// OODPoint returns the labels for squeezing round r's out-of-domain points.
func (s *Schedule) OODPoint(round int) []string { return s.rounds[round].oodPoint }

// OODEval returns the labels for absorbing round r's out-of-domain
// evaluations, paired index-for-index with OODPoint.
func (s *Schedule) OODEval(round int) []string { return s.rounds[round].oodEval }

// Commit returns the label for absorbing round r's Merkle root.
func (s *Schedule) Commit(round int) string { return s.rounds[round].commit }

// Queries returns the labels for squeezing round r's in-domain query
// indices.
func (s *Schedule) Queries(round int) []string { return s.rounds[round].queries }

// PowSeed returns the label for round r's proof-of-work seed.
func (s *Schedule) PowSeed(round int) string { return s.rounds[round].powSeed }

// PowNonce returns the label for round r's proof-of-work nonce.
func (s *Schedule) PowNonce(round int) string { return s.rounds[round].powNonce }

// Combination returns the label for round r's cross-round combination
// randomness.
func (s *Schedule) Combination(round int) string { return s.rounds[round].combination }

// FinalSumcheck returns the labels for the final (no re-commitment)
// sumcheck half-rounds.
func (s *Schedule) FinalSumcheck() []string { return s.finalSumcheck }

// FinalPoly returns the label for absorbing the final polynomial's
// coefficients.
func (s *Schedule) FinalPoly() string { return s.finalPoly }

// FinalQueries returns the labels for the final round's in-domain query
// indices.
func (s *Schedule) FinalQueries() []string { return s.finalQueries }

// FinalPowSeed returns the label for the final proof-of-work seed.
func (s *Schedule) FinalPowSeed() string { return s.finalPowSeed }

// FinalPowNonce returns the label for the final proof-of-work nonce.
func (s *Schedule) FinalPowNonce() string { return s.finalPowNonce }

// All returns every label in the schedule, in the exact order the protocol
// will touch them -- the list fiatshamir.NewTranscript must be built with.
func (s *Schedule) All() []string {
	var all []string
	all = append(all, s.initialCommit)
	all = append(all, s.initialCombination...)
	for r := range s.rounds {
		rl := s.rounds[r]
		all = append(all, rl.sumcheck...)
		for i := range rl.oodPoint {
			all = append(all, rl.oodPoint[i], rl.oodEval[i])
		}
		all = append(all, rl.commit)
		all = append(all, rl.queries...)
		all = append(all, rl.powSeed, rl.powNonce)
		all = append(all, rl.combination)
	}
	all = append(all, s.finalSumcheck...)
	all = append(all, s.finalPoly)
	all = append(all, s.finalQueries...)
	all = append(all, s.finalPowSeed, s.finalPowNonce)
	return all
}
