// Package merkle groups Reed-Solomon domain evaluations into folding-factor
// sized leaves and commits to them with the teacher's own two-to-one Merkle
// tree (gnark-crypto/accumulator/merkletree), exactly as fri.go does for its
// own oracle commitments (spec.md §3, §4.E).
package merkle

import (
	"bytes"
	"hash"

	"github.com/consensys/gnark-crypto/accumulator/merkletree"
	"github.com/whir-go/whir/poly"
)

// F is the field element type shared with package poly.
type F = poly.F

// Leaf holds the 2^foldingFactor RS-evaluations belonging to one query's
// fiber under the domain's repeated-squaring map, grouped so that a single
// Merkle path authenticates everything domain.Domain.FoldLeaf needs to fold
// one query into the next round's domain.
type Leaf []F

// Marshal is the leaf's canonical byte encoding: its field elements'
// canonical little-endian encodings, concatenated in order.
func (l Leaf) Marshal() []byte {
	if len(l) == 0 {
		return nil
	}
	elemSize := len(l[0].Marshal())
	buf := make([]byte, 0, len(l)*elemSize)
	for _, e := range l {
		buf = append(buf, e.Marshal()...)
	}
	return buf
}

// GroupLeaves partitions domain evaluations into leaves of 2^foldingFactor
// field elements each, one per fiber of the repeated-squaring map x ->
// x^(2^foldingFactor): leaf l holds evals[l], evals[l+leafCount],
// evals[l+2*leafCount], ..., where leafCount = len(evals)/width, mirroring
// fri.go's sort() (which does the same regrouping one squaring step at a
// time). domain.Domain.FoldLeaf consumes a leaf in this exact order.
func GroupLeaves(evals []F, foldingFactor int) []Leaf {
	width := 1 << foldingFactor
	leafCount := len(evals) / width
	leaves := make([]Leaf, leafCount)
	for l := 0; l < leafCount; l++ {
		leaf := make(Leaf, width)
		for j := 0; j < width; j++ {
			leaf[j] = evals[l+j*leafCount]
		}
		leaves[l] = leaf
	}
	return leaves
}

// Tree is a commitment to a slice of leaves: a two-to-one Merkle tree whose
// root is absorbed into the transcript and whose individual leaves can be
// opened with an authentication path.
type Tree struct {
	h      hash.Hash
	leaves []Leaf
	root   []byte
}

// Commit hashes every leaf and builds the tree, returning it together with
// its root.
func Commit(h hash.Hash, leaves []Leaf) (*Tree, []byte) {
	t := merkletree.New(h)
	for _, leaf := range leaves {
		t.Push(leaf.Marshal())
	}
	root := t.Root()
	return &Tree{h: h, leaves: leaves, root: root}, root
}

// Root returns the tree's commitment.
func (t *Tree) Root() []byte { return t.root }

// MultiPath is a batch of authentication paths, one per queried leaf index.
type MultiPath struct {
	Indices   []int
	Leaves    []Leaf
	proofSets [][][]byte
	numLeaves uint64
}

// Open builds authentication paths for every index in indices, in order.
func (t *Tree) Open(indices []int) MultiPath {
	mp := MultiPath{
		Indices:   append([]int(nil), indices...),
		Leaves:    make([]Leaf, len(indices)),
		proofSets: make([][][]byte, len(indices)),
	}
	for i, idx := range indices {
		tree := merkletree.New(t.h)
		if err := tree.SetIndex(uint64(idx)); err != nil {
			panic(err)
		}
		for _, leaf := range t.leaves {
			tree.Push(leaf.Marshal())
		}
		_, proofSet, _, numLeaves := tree.Prove()
		mp.proofSets[i] = proofSet
		mp.numLeaves = numLeaves
		mp.Leaves[i] = t.leaves[idx]
	}
	return mp
}

// Verify checks that every (index, leaf) pair in mp authenticates against
// root under h.
func Verify(h hash.Hash, root []byte, mp MultiPath) bool {
	if len(mp.Indices) != len(mp.Leaves) || len(mp.Indices) != len(mp.proofSets) {
		return false
	}
	for i, idx := range mp.Indices {
		// proofSets[i][0] is the leaf data the path was built over; it must be
		// exactly the leaf mp reveals at this index.
		if len(mp.proofSets[i]) == 0 || !bytes.Equal(mp.proofSets[i][0], mp.Leaves[i].Marshal()) {
			return false
		}
		if !merkletree.VerifyProof(h, root, mp.proofSets[i], uint64(idx), mp.numLeaves) {
			return false
		}
	}
	return true
}
