package params

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRoundPlanShapes(t *testing.T) {
	mv := Multivariate{NumVariables: 10}
	cfg := Config{
		FoldingFactor:         3,
		StartingLogInvRate:    2,
		SoundnessType:         UniqueDecoding,
		SecurityLevel:         100,
		ProtocolSecurityLevel: 80,
	}
	d := New(mv, cfg)

	require.Equal(t, 3, d.NumRounds) // floor(10/3)
	require.Equal(t, 1, d.FinalVariables)
	require.Equal(t, 1, d.FinalSumcheckRounds)
	require.Len(t, d.OODQueries, d.NumRounds)
	require.Len(t, d.InDomainQueries, d.NumRounds)
	require.Len(t, d.PowBits, d.NumRounds)
	for _, q := range d.OODQueries {
		require.Equal(t, outOfDomainQueriesPerRound, q)
	}
	for _, b := range d.PowBits {
		require.Equal(t, 20, b) // security - protocol security
	}
	require.Equal(t, 20, d.FinalPowBits)
}

func TestQueriesPerRoundOrdering(t *testing.T) {
	// Tighter soundness assumptions require fewer queries for the same
	// target error: unique-decoding >= provable-list >= conjecture-list.
	unique := queriesPerRound(100, 4, UniqueDecoding)
	provable := queriesPerRound(100, 4, ProvableList)
	conjecture := queriesPerRound(100, 4, ConjectureList)

	require.GreaterOrEqual(t, unique, provable)
	require.GreaterOrEqual(t, provable, conjecture)
}

func TestCeilDiv(t *testing.T) {
	require.Equal(t, 0, ceilDiv(0, 4))
	require.Equal(t, 1, ceilDiv(1, 4))
	require.Equal(t, 1, ceilDiv(4, 4))
	require.Equal(t, 2, ceilDiv(5, 4))
}

func TestExactlyDivisibleNumVariablesHasNoFinalSumcheck(t *testing.T) {
	d := New(Multivariate{NumVariables: 9}, Config{
		FoldingFactor:         3,
		StartingLogInvRate:    2,
		SoundnessType:         ConjectureList,
		SecurityLevel:         100,
		ProtocolSecurityLevel: 100,
	})
	require.Equal(t, 3, d.NumRounds)
	require.Equal(t, 0, d.FinalVariables)
	require.Equal(t, 0, d.FinalSumcheckRounds)
	require.Equal(t, 0, d.PowBits[0])
}
