package whir

import "errors"

// Error kinds the verifier can return, matching spec.md §7's taxonomy.
// Declared at package scope the way fri.go declares ErrLowDegree et al., so
// callers can branch with errors.Is instead of string matching.
var (
	// ErrMalformedProof covers wrong lengths, deserialization failures, and
	// non-power-of-two polynomials.
	ErrMalformedProof = errors.New("whir: malformed proof")
	// ErrTranscriptDesync covers a squeeze that does not match what the
	// prover produced, or a claim mismatch detected outside a sumcheck round.
	ErrTranscriptDesync = errors.New("whir: transcript desynchronized")
	// ErrSumcheckReject covers g(0)+g(1) != claim at some round.
	ErrSumcheckReject = errors.New("whir: sumcheck round rejected")
	// ErrMerkleReject covers an authentication path that does not verify.
	ErrMerkleReject = errors.New("whir: merkle authentication failed")
	// ErrFoldingReject covers a reconstructed folded value that disagrees
	// with the sumcheck claim.
	ErrFoldingReject = errors.New("whir: folded evaluation disagrees with claim")
	// ErrPoWReject covers a grinding nonce that does not satisfy the bit
	// requirement.
	ErrPoWReject = errors.New("whir: proof-of-work nonce rejected")
	// ErrFinalReject covers a final-polynomial evaluation that disagrees
	// with the running claim.
	ErrFinalReject = errors.New("whir: final polynomial disagrees with claim")
)
