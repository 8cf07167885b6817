package transcript

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbsorbSqueezeRoundTrip(t *testing.T) {
	schedule := []string{"commit", "challenge"}
	tr := New(sha256.New(), schedule)

	require.NoError(t, tr.AbsorbBytes("commit", []byte("root-bytes")))
	x, err := tr.SqueezeScalar("challenge")
	require.NoError(t, err)
	require.False(t, x.IsZero())
}

func TestSqueezeOutOfScheduleFails(t *testing.T) {
	tr := New(sha256.New(), []string{"a"})
	_, err := tr.SqueezeBytes("b")
	require.Error(t, err)
}

func TestSqueezeIndexInBound(t *testing.T) {
	labels := []string{"i0", "i1", "i2"}
	tr := New(sha256.New(), labels)
	indices, err := tr.SqueezeIndices(labels, 7)
	require.NoError(t, err)
	require.Len(t, indices, 3)
	for _, idx := range indices {
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 7)
	}
}

func TestPowGrindSatisfiesBits(t *testing.T) {
	schedule := []string{"seed", "nonce"}
	tr := New(sha256.New(), schedule)
	nonce, err := tr.PowGrind("seed", "nonce", 8)
	require.NoError(t, err)

	verifyTr := New(sha256.New(), schedule)
	seed, err := verifyTr.SqueezeBytes("seed")
	require.NoError(t, err)
	require.True(t, CheckPow(sha256.New(), seed, nonce, 8))
}

func TestVerifyPowMirrorsGrindTranscriptState(t *testing.T) {
	schedule := []string{"seed", "nonce", "after"}

	proverTr := New(sha256.New(), schedule)
	nonce, err := proverTr.PowGrind("seed", "nonce", 6)
	require.NoError(t, err)
	afterProver, err := proverTr.SqueezeScalar("after")
	require.NoError(t, err)

	verifierTr := New(sha256.New(), schedule)
	ok, err := verifierTr.VerifyPow("seed", "nonce", 6, nonce)
	require.NoError(t, err)
	require.True(t, ok)
	afterVerifier, err := verifierTr.SqueezeScalar("after")
	require.NoError(t, err)

	require.True(t, afterProver.Equal(&afterVerifier))
}

func TestVerifyPowRejectsBadNonce(t *testing.T) {
	schedule := []string{"seed", "nonce"}
	tr := New(sha256.New(), schedule)
	ok, err := tr.VerifyPow("seed", "nonce", 16, 0)
	require.NoError(t, err)
	require.False(t, ok)
}
