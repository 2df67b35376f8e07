package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylabs/wolfgoatpig/internal/game"
)

func roundWith(seed int64, points map[game.PlayerID]float64) RoundResult {
	return RoundResult{
		Seed:          seed,
		Points:        points,
		Holes:         18,
		Pushes:        2,
		Solos:         1,
		MaxMultiplier: 4,
	}
}

func TestAddAggregates(t *testing.T) {
	t.Parallel()

	s := New()
	s.Add(roundWith(1, map[game.PlayerID]float64{"a": 2, "b": -1, "c": 1, "d": -2}))
	s.Add(roundWith(2, map[game.PlayerID]float64{"a": 4, "b": 1, "c": -3, "d": -2}))

	assert.Equal(t, 2, s.Rounds)
	assert.Equal(t, 36, s.Holes)
	assert.Equal(t, 4, s.Pushes)
	assert.Equal(t, 2, s.Solos)
	assert.Equal(t, 4, s.MaxMultiplier)

	a := s.Player("a")
	require.NotNil(t, a)
	assert.Equal(t, 2, a.Rounds)
	assert.InDelta(t, 3.0, a.Mean(), 1e-9)
	assert.InDelta(t, 4.0, a.Best, 1e-9)
	assert.InDelta(t, 2.0, a.Worst, 1e-9)
	assert.InDelta(t, 2.0, a.Variance(), 1e-9) // samples 2 and 4

	assert.Nil(t, s.Player("nobody"))
}

func TestPlayersSortedByMean(t *testing.T) {
	t.Parallel()

	s := New()
	s.Add(roundWith(1, map[game.PlayerID]float64{"a": -1, "b": 3, "c": 0, "d": -2}))
	assert.Equal(t, []game.PlayerID{"b", "c", "a", "d"}, s.Players())
}

func TestValidateCatchesDrift(t *testing.T) {
	t.Parallel()

	s := New()
	s.Add(roundWith(1, map[game.PlayerID]float64{"a": 2, "b": -2}))
	require.NoError(t, s.Validate())

	s.Add(roundWith(2, map[game.PlayerID]float64{"a": 5, "b": -1}))
	require.Error(t, s.Validate(), "a non-zero-sum round must be caught")
}

func TestMedianAndPercentiles(t *testing.T) {
	t.Parallel()

	s := New()
	for i, pts := range []float64{-2, 4, 1, -1, 3} {
		s.Add(roundWith(int64(i), map[game.PlayerID]float64{"a": pts, "b": -pts}))
	}

	a := s.Player("a")
	require.NotNil(t, a)
	assert.InDelta(t, 1.0, a.Median(), 1e-9) // sorted: -2 -1 1 3 4
	assert.InDelta(t, -2.0, a.Percentile(0), 1e-9)
	assert.InDelta(t, 1.0, a.Percentile(0.5), 1e-9)
	assert.InDelta(t, 4.0, a.Percentile(1), 1e-9)
	assert.InDelta(t, 3.5, a.Percentile(0.875), 1e-9) // halfway between 3 and 4

	// Even count: median is the midpoint of the middle pair.
	s.Add(roundWith(5, map[game.PlayerID]float64{"a": 2, "b": -2}))
	assert.InDelta(t, 1.5, s.Player("a").Median(), 1e-9) // middle pair 1 and 2

	var empty PlayerStats
	assert.Zero(t, empty.Median())
	assert.Zero(t, empty.Percentile(0.5))
}

func TestConfidenceIntervalNarrowsWithRounds(t *testing.T) {
	t.Parallel()

	few, many := New(), New()
	for i := 0; i < 4; i++ {
		few.Add(roundWith(int64(i), map[game.PlayerID]float64{"a": float64(i%2)*2 - 1, "b": 1 - float64(i%2)*2}))
	}
	for i := 0; i < 400; i++ {
		many.Add(roundWith(int64(i), map[game.PlayerID]float64{"a": float64(i%2)*2 - 1, "b": 1 - float64(i%2)*2}))
	}
	fLo, fHi := few.Player("a").ConfidenceInterval95()
	mLo, mHi := many.Player("a").ConfidenceInterval95()
	assert.Less(t, mHi-mLo, fHi-fLo)
}

func TestReport(t *testing.T) {
	t.Parallel()

	s := New()
	r := roundWith(1, map[game.PlayerID]float64{"alice": 1.5, "bob": -1.5})
	r.Personalities = map[game.PlayerID]string{"alice": "aggressive", "bob": "conservative"}
	s.Add(r)

	report := s.Report()
	assert.Contains(t, report, "rounds=1")
	assert.Contains(t, report, "alice (aggressive)")
	assert.Contains(t, report, "bob (conservative)")
}

func TestZeroRoundsAreSafe(t *testing.T) {
	t.Parallel()

	s := New()
	require.NoError(t, s.Validate())
	assert.Empty(t, s.Players())
	var ps PlayerStats
	assert.Zero(t, ps.Mean())
	assert.Zero(t, ps.Variance())
	assert.Zero(t, ps.StdError())
}
