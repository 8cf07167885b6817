package whir

import (
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/sis"
)

// NewSISHashFactory builds a hash.Hash factory backed by a ring-SIS lattice
// hash instead of a generic cryptographic hash function. RSis implements
// hash.Hash directly, so it drops into Committer and Verifier exactly where
// sha256.New or blake2b.New256 would go -- an algebraic alternative for
// callers building a WHIR instance meant to compose with an in-circuit
// verifier, where an arithmetic-friendly compression function avoids a
// bit-decomposition gadget at every Merkle level.
//
// seed, logTwoDegree, logTwoBound and keySize are the ring-SIS instance
// parameters forwarded to sis.NewRingSISMaker; logTwoDegree must keep the
// resulting ring dimension a power of two.
func NewSISHashFactory(seed int64, logTwoDegree, logTwoBound, keySize int) (func() hash.Hash, error) {
	return sis.NewRingSISMaker(seed, logTwoDegree, logTwoBound, keySize)
}
