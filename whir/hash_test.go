package whir_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whir-go/whir/merkle"
	"github.com/whir-go/whir/poly"
	"github.com/whir-go/whir/whir"
)

// TestSISHashMerkleRoundTrip exercises NewSISHashFactory as a drop-in
// Merkle leaf hash, independent of the sha256-based transcript used by the
// rest of the integration tests.
func TestSISHashMerkleRoundTrip(t *testing.T) {
	factory, err := whir.NewSISHashFactory(1, 3, 4, 4)
	require.NoError(t, err)

	evals := make([]poly.F, 8)
	for i := range evals {
		evals[i] = feUint(uint64(i + 1))
	}
	leaves := merkle.GroupLeaves(evals, 1)

	tree, root := merkle.Commit(factory(), leaves)
	require.Equal(t, root, tree.Root())

	mp := tree.Open([]int{0, 2})
	require.True(t, merkle.Verify(factory(), root, mp))
}
