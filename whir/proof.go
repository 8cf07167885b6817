package whir

import "github.com/whir-go/whir/merkle"

// RoundOpening is everything the prover emits for one WHIR round: the
// folding_factor sumcheck round polynomials (each as its evaluations at
// X=0,1,2 -- a verifier cannot recompute these without the working
// polynomial, so they must travel with the proof), the new commitment root,
// the out-of-domain points and their claimed evaluations, and the Merkle
// openings against the *previous* round's tree (spec.md §3, §4.F).
type RoundOpening struct {
	SumcheckPolys [][3]F
	Root          []byte
	OODPoints     []F
	OODEvals      []F
	Queries       merkle.MultiPath
	PowNonce      uint64
}

// WhirProof is the ordered list of per-round openings plus the final
// sumcheck round polynomials, the final polynomial, and its closing queries
// (spec.md §3).
type WhirProof struct {
	Rounds             []RoundOpening
	FinalSumcheckPolys [][3]F
	FinalPoly          []F
	FinalQueries       merkle.MultiPath
	FinalPowNonce      uint64
}

// ProofSize is a diagnostic byte-accounting helper, not a benchmarking
// harness: it adds up, without performing any I/O, 32 bytes per field element
// (final polynomial, sumcheck polynomials, OOD points and evaluations, opened
// leaves), the length of every round root, 8 bytes per PoW nonce and 8 bytes
// per opened index. The hashes of the Merkle authentication paths are not
// counted. Kept because the original the spec was distilled from keeps an
// equivalent whir_proof_size for its own benchmarks.
func (p *WhirProof) ProofSize() int {
	const elemBytes = 32
	size := len(p.FinalPoly) * elemBytes
	size += len(p.FinalSumcheckPolys) * 3 * elemBytes
	size += merklePathSize(p.FinalQueries)
	for _, r := range p.Rounds {
		size += len(r.SumcheckPolys) * 3 * elemBytes
		size += len(r.Root)
		size += len(r.OODPoints) * elemBytes
		size += len(r.OODEvals) * elemBytes
		size += 8 // PoW nonce
		size += merklePathSize(r.Queries)
	}
	return size
}

func merklePathSize(mp merkle.MultiPath) int {
	const elemBytes = 32
	size := 0
	for _, leaf := range mp.Leaves {
		size += len(leaf) * elemBytes
	}
	size += len(mp.Indices) * 8
	return size
}
