package merkle

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func feUint(v uint64) F {
	var f F
	f.SetUint64(v)
	return f
}

func TestGroupLeavesIsStrided(t *testing.T) {
	evals := make([]F, 8)
	for i := range evals {
		evals[i] = feUint(uint64(i))
	}
	leaves := GroupLeaves(evals, 2)
	require.Len(t, leaves, 2)
	require.Equal(t, Leaf{evals[0], evals[2], evals[4], evals[6]}, leaves[0])
	require.Equal(t, Leaf{evals[1], evals[3], evals[5], evals[7]}, leaves[1])
}

func TestCommitOpenVerifyRoundTrip(t *testing.T) {
	evals := make([]F, 16)
	for i := range evals {
		evals[i] = feUint(uint64(i * 3))
	}
	leaves := GroupLeaves(evals, 2)

	tree, root := Commit(sha256.New(), leaves)
	require.Equal(t, root, tree.Root())

	indices := []int{0, 3}
	mp := tree.Open(indices)
	require.Equal(t, indices, mp.Indices)
	require.True(t, Verify(sha256.New(), root, mp))
}

func TestVerifyRejectsWrongRoot(t *testing.T) {
	evals := make([]F, 8)
	for i := range evals {
		evals[i] = feUint(uint64(i))
	}
	leaves := GroupLeaves(evals, 1)
	tree, _ := Commit(sha256.New(), leaves)
	mp := tree.Open([]int{1})

	wrongRoot := make([]byte, 32)
	require.False(t, Verify(sha256.New(), wrongRoot, mp))
}
