// Package params derives a deterministic WHIR round plan from a target
// security level, soundness regime, folding factor and starting rate
// (spec.md §4.D). The three-type split (Multivariate / Config / Derived)
// mirrors the MultivariateParameters / WhirParameters / WhirConfig layering
// of the upstream parameters.rs this core was distilled from: "what the
// caller states" kept separate from "what gets derived".
package params

import (
	"fmt"
	"math"
)

// SoundnessType selects which list-decoding assumption the round planner
// derives query counts under.
type SoundnessType int

const (
	// UniqueDecoding assumes only unique decoding up to the Singleton bound;
	// the cheapest assumption, the most queries per bit of soundness.
	UniqueDecoding SoundnessType = iota
	// ProvableList assumes list decoding up to the (proven) Johnson bound.
	ProvableList
	// ConjectureList assumes list decoding up to capacity, a conjectured
	// (not proven) bound; the fewest queries per bit of soundness.
	ConjectureList
)

func (s SoundnessType) String() string {
	switch s {
	case UniqueDecoding:
		return "unique-decoding"
	case ProvableList:
		return "provable-list"
	case ConjectureList:
		return "conjecture-list"
	default:
		return fmt.Sprintf("soundness(%d)", int(s))
	}
}

// Multivariate is the shape of the polynomial the scheme commits to: its
// number of variables. Kept as its own type, rather than folded into
// Config, because it is a property of the statement, not a protocol choice.
type Multivariate struct {
	NumVariables int
}

func (m Multivariate) String() string {
	return fmt.Sprintf("Multivariate(num_variables=%d)", m.NumVariables)
}

// Config is the caller-supplied protocol choice: the policy knobs spec.md
// §4.D lists as inputs to the round planner.
type Config struct {
	FoldingFactor         int
	StartingLogInvRate    int
	SoundnessType         SoundnessType
	SecurityLevel         int
	ProtocolSecurityLevel int
}

// Derived is the round planner's output: the deterministic per-round plan
// WhirConfig exposes to the committer, prover and verifier.
type Derived struct {
	Multivariate
	Config

	// NumRounds is the number of full WHIR rounds (commit + fold) before the
	// final polynomial is sent in the clear.
	NumRounds int
	// FinalVariables is the variable count of the polynomial sent directly
	// in the clear, after NumRounds full folding rounds.
	FinalVariables int
	// FinalSumcheckRounds is the number of plain (no re-commitment) sumcheck
	// half-rounds run against the final polynomial before it is revealed.
	FinalSumcheckRounds int

	// OODQueries[r] is the number of out-of-domain points sampled in round r.
	OODQueries []int
	// InDomainQueries[r] is the number of in-domain leaf openings in round r.
	InDomainQueries []int
	// PowBits[r] is the proof-of-work grinding target for round r.
	PowBits []int

	// FinalQueries is the number of leaf openings against the final
	// committed tree.
	FinalQueries int
	// FinalPowBits is the grinding target applied after the final queries.
	FinalPowBits int
}

func (d Derived) String() string {
	return fmt.Sprintf(
		"WhirConfig(n=%d, k=%d, rounds=%d, final_vars=%d, rate=2^-%d, soundness=%s, security=%d/%d)",
		d.NumVariables, d.FoldingFactor, d.NumRounds, d.FinalVariables,
		d.StartingLogInvRate, d.SoundnessType, d.SecurityLevel, d.ProtocolSecurityLevel,
	)
}

// outOfDomainQueriesPerRound is a constant, not derived from the soundness
// regime: bn254's scalar field is ~254 bits wide, so even two independent
// out-of-domain samples bind the prover to a single low-degree polynomial
// with far more than any practical protocol_security_level of security.
const outOfDomainQueriesPerRound = 2

// New derives a deterministic round plan for mv under cfg. The formulas for
// (q_r, o_r, b_r) are policy -- spec.md §9 explicitly leaves them as an open
// question to be chosen and documented by the implementer; see
// queriesPerRound for the ones used below.
func New(mv Multivariate, cfg Config) Derived {
	d := Derived{Multivariate: mv, Config: cfg}

	d.NumRounds = mv.NumVariables / cfg.FoldingFactor
	d.FinalVariables = mv.NumVariables % cfg.FoldingFactor
	d.FinalSumcheckRounds = d.FinalVariables

	powBits := max(0, cfg.SecurityLevel-cfg.ProtocolSecurityLevel)

	d.OODQueries = make([]int, d.NumRounds)
	d.InDomainQueries = make([]int, d.NumRounds)
	d.PowBits = make([]int, d.NumRounds)
	for r := 0; r < d.NumRounds; r++ {
		d.OODQueries[r] = outOfDomainQueriesPerRound
		d.InDomainQueries[r] = queriesPerRound(cfg.ProtocolSecurityLevel, cfg.StartingLogInvRate, cfg.SoundnessType)
		d.PowBits[r] = powBits
	}

	d.FinalQueries = queriesPerRound(cfg.ProtocolSecurityLevel, cfg.StartingLogInvRate, cfg.SoundnessType)
	d.FinalPowBits = powBits

	return d
}

// queriesPerRound returns the minimal number of in-domain queries whose
// combined soundness error is below 2^-protocolSecurityLevel, given a
// per-query error rate that depends on the soundness regime:
//
//   - UniqueDecoding: decoding only reaches half the minimum distance,
//     (1-rate)/2, so a corrupted codeword survives one query with probability
//     (1+rate)/2 -- less than one bit of soundness per query, the most
//     queries of the three regimes.
//   - ProvableList: the proven Johnson-bound list-decoding radius gives a
//     per-query error of about sqrt(rate), i.e. 2^-logInvRate/2, so it takes
//     2*protocolSecurityLevel/logInvRate queries.
//   - ConjectureList: the conjectured capacity-achieving bound gives a
//     per-query error close to the rate itself, 2^-logInvRate; a factor of
//     3/2 over protocolSecurityLevel/logInvRate is used as a documented,
//     conservative margin, still strictly fewer queries than ProvableList.
func queriesPerRound(protocolSecurityLevel, logInvRate int, soundness SoundnessType) int {
	switch soundness {
	case UniqueDecoding:
		if protocolSecurityLevel <= 0 {
			return 0
		}
		rate := math.Exp2(-float64(logInvRate))
		bitsPerQuery := -math.Log2((1 + rate) / 2)
		return int(math.Ceil(float64(protocolSecurityLevel) / bitsPerQuery))
	case ProvableList:
		return ceilDiv(2*protocolSecurityLevel, logInvRate)
	case ConjectureList:
		return ceilDiv(3*protocolSecurityLevel, 2*logInvRate)
	default:
		panic(fmt.Sprintf("params: unknown soundness type %d", soundness))
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
