// Package whir ties the round planner, committer, prover and verifier
// together behind the small external interface spec.md §6 describes:
// WhirConfig::new, Committer::commit, Prover::prove, Verifier::verify.
package whir

import (
	"hash"

	"github.com/whir-go/whir/params"
	"github.com/whir-go/whir/transcript"
)

// Config bundles the derived round plan with the Merkle leaf hash every
// commitment in a run shares. It is the single object a caller builds once
// and threads through Committer, Prover and Verifier.
type Config struct {
	Derived params.Derived
	Hash    func() hash.Hash
}

// NewConfig derives the round plan for mv/cfg and pairs it with hashFactory,
// the Merkle leaf hash constructor every Committer/Verifier built from this
// Config will use. hashFactory is a factory, not a shared instance, because
// gnark-crypto's merkletree mutates the hash.Hash it is given.
func NewConfig(mv params.Multivariate, cfg params.Config, hashFactory func() hash.Hash) Config {
	return Config{Derived: params.New(mv, cfg), Hash: hashFactory}
}

// NewSchedule derives the Fiat-Shamir label schedule for a statement of
// numStatements claims against this config's round plan.
func (c Config) NewSchedule(numStatements int) *transcript.Schedule {
	return transcript.BuildSchedule(c.Derived, numStatements)
}

// NewTranscript wraps h into a Transcript scoped to schedule's labels. h must
// be the same hash algorithm used to build the Merkle trees, matching the
// teacher's convention of reusing one hash across both the transcript and
// its oracle commitments.
func (c Config) NewTranscript(h hash.Hash, schedule *transcript.Schedule) *transcript.Transcript {
	return transcript.New(h, schedule.All())
}

// NewCommitter builds a Committer under this config's folding factor and
// starting rate.
func (c Config) NewCommitter() *Committer {
	return NewCommitter(c.Hash(), c.Derived.FoldingFactor, c.Derived.StartingLogInvRate)
}
