package whir

import (
	"hash"

	"github.com/whir-go/whir/domain"
	"github.com/whir-go/whir/merkle"
	"github.com/whir-go/whir/poly"
	"github.com/whir-go/whir/transcript"
)

// Witness is the prover's commitment to one round's working polynomial: its
// coefficients, the RS domain it was evaluated on, the grouped leaves, and
// the Merkle tree built over them (spec.md §3, §4.E).
type Witness struct {
	Coeffs poly.CoefficientList
	Domain *domain.Domain
	Leaves []merkle.Leaf
	Tree   *merkle.Tree
	Root   []byte
}

// Committer evaluates a working polynomial on a Reed-Solomon domain, groups
// the evaluations into folding-factor-sized leaves, and commits to them.
type Committer struct {
	h             hash.Hash
	foldingFactor int
	logInvRate    int
}

// NewCommitter builds a Committer over the given Merkle leaf hash, folding
// factor, and (constant across rounds) log inverse rate.
func NewCommitter(h hash.Hash, foldingFactor, logInvRate int) *Committer {
	return &Committer{h: h, foldingFactor: foldingFactor, logInvRate: logInvRate}
}

// Commit evaluates coeffs on its Reed-Solomon domain, builds the Merkle
// tree, and absorbs the root into tr under label. It is the external
// interface's Committer::commit(&mut transcript, coeffs) -> Witness.
func (c *Committer) Commit(tr *transcript.Transcript, label string, coeffs poly.CoefficientList) (*Witness, error) {
	dom := domain.New(coeffs.NumVariables(), c.logInvRate)
	evals := dom.Evaluate(coeffs.Coeffs())
	leaves := merkle.GroupLeaves(evals, c.foldingFactor)
	tree, root := merkle.Commit(c.h, leaves)

	if err := tr.AbsorbBytes(label, root); err != nil {
		return nil, err
	}
	if _, err := tr.SqueezeBytes(label); err != nil {
		return nil, err
	}

	return &Witness{Coeffs: coeffs, Domain: dom, Leaves: leaves, Tree: tree, Root: root}, nil
}
