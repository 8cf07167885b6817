package transcript

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whir-go/whir/params"
)

func testDerived() params.Derived {
	return params.New(params.Multivariate{NumVariables: 6}, params.Config{
		FoldingFactor:         2,
		StartingLogInvRate:    2,
		SoundnessType:         params.ConjectureList,
		SecurityLevel:         20,
		ProtocolSecurityLevel: 20,
	})
}

func TestBuildScheduleLabelCounts(t *testing.T) {
	derived := testDerived()
	s := BuildSchedule(derived, 3)

	require.Len(t, s.InitialCombination(), 3)
	require.Len(t, s.rounds, derived.NumRounds)
	for r := 0; r < derived.NumRounds; r++ {
		require.Len(t, s.Sumcheck(r), derived.FoldingFactor)
		require.Len(t, s.OODPoint(r), derived.OODQueries[r])
		require.Len(t, s.OODEval(r), derived.OODQueries[r])
		require.Len(t, s.Queries(r), derived.InDomainQueries[r])
	}
	require.Len(t, s.FinalSumcheck(), derived.FinalSumcheckRounds)
	require.Len(t, s.FinalQueries(), derived.FinalQueries)
}

func TestAllLabelsUniqueAndOrdered(t *testing.T) {
	derived := testDerived()
	s := BuildSchedule(derived, 2)
	all := s.All()

	seen := make(map[string]bool, len(all))
	for _, label := range all {
		require.False(t, seen[label], "duplicate label %q", label)
		seen[label] = true
	}
	require.Equal(t, s.InitialCommit(), all[0])
}

func TestScheduleUsableAsTranscriptLabels(t *testing.T) {
	derived := testDerived()
	s := BuildSchedule(derived, 1)
	require.NotPanics(t, func() {
		_ = New(sha256.New(), s.All())
	})
}
