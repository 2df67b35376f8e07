// Package statistics aggregates simulation results across rounds: per-player
// quarter totals with variance and confidence intervals, plus round-level
// counters for the betting mechanics.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fairwaylabs/wolfgoatpig/internal/game"
)

// RoundResult is the outcome of a single simulated round.
type RoundResult struct {
	Seed          int64                         // RNG seed for this round (for replay)
	Points        map[game.PlayerID]float64     // final quarters per player
	Personalities map[game.PlayerID]string      // bot personality per player
	Holes         int                           // holes settled
	Pushes        int                           // holes that carried over
	Solos         int                           // solo declarations
	MaxMultiplier int                           // largest multiplier reached
	ManualReviews int                           // holes flagged for review
}

// PlayerStats tracks one player's quarters across rounds.
type PlayerStats struct {
	Rounds int
	Sum    float64
	Sum2   float64   // sum of squares for variance
	Values []float64 // all round results, for median/percentile calculation
	Best   float64
	Worst  float64
}

// Mean returns the arithmetic mean quarters per round.
func (p *PlayerStats) Mean() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return p.Sum / float64(p.Rounds)
}

// Variance returns the sample variance of the player's round results.
func (p *PlayerStats) Variance() float64 {
	if p.Rounds < 2 {
		return 0
	}
	mean := p.Mean()
	return (p.Sum2 - float64(p.Rounds)*mean*mean) / float64(p.Rounds-1)
}

// StdDev returns the sample standard deviation.
func (p *PlayerStats) StdDev() float64 {
	return math.Sqrt(p.Variance())
}

// StdError returns the standard error of the mean.
func (p *PlayerStats) StdError() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return p.StdDev() / math.Sqrt(float64(p.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (p *PlayerStats) ConfidenceInterval95() (float64, float64) {
	mean := p.Mean()
	margin := 1.96 * p.StdError()
	return mean - margin, mean + margin
}

// Median returns the median quarters per round.
func (p *PlayerStats) Median() float64 {
	if len(p.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(p.Values))
	copy(sorted, p.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// linearly interpolated between round results.
func (p *PlayerStats) Percentile(pct float64) float64 {
	if len(p.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(p.Values))
	copy(sorted, p.Values)
	sort.Float64s(sorted)

	index := pct * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Statistics aggregates many RoundResults.
type Statistics struct {
	Rounds        int
	Holes         int
	Pushes        int
	Solos         int
	ManualReviews int
	MaxMultiplier int

	players       map[game.PlayerID]*PlayerStats
	personalities map[game.PlayerID]string
}

// New returns empty statistics.
func New() *Statistics {
	return &Statistics{
		players:       make(map[game.PlayerID]*PlayerStats),
		personalities: make(map[game.PlayerID]string),
	}
}

// Add incorporates one round result.
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	s.Holes += result.Holes
	s.Pushes += result.Pushes
	s.Solos += result.Solos
	s.ManualReviews += result.ManualReviews
	if result.MaxMultiplier > s.MaxMultiplier {
		s.MaxMultiplier = result.MaxMultiplier
	}
	for pid, pts := range result.Points {
		ps, ok := s.players[pid]
		if !ok {
			ps = &PlayerStats{Best: pts, Worst: pts}
			s.players[pid] = ps
		}
		ps.Rounds++
		ps.Sum += pts
		ps.Sum2 += pts * pts
		ps.Values = append(ps.Values, pts)
		if pts > ps.Best {
			ps.Best = pts
		}
		if pts < ps.Worst {
			ps.Worst = pts
		}
	}
	for pid, personality := range result.Personalities {
		s.personalities[pid] = personality
	}
}

// Player returns the stats for one player, or nil if unseen.
func (s *Statistics) Player(id game.PlayerID) *PlayerStats {
	return s.players[id]
}

// Players returns the tracked player IDs sorted by mean quarters, best first.
func (s *Statistics) Players() []game.PlayerID {
	out := make([]game.PlayerID, 0, len(s.players))
	for pid := range s.players {
		out = append(out, pid)
	}
	sort.Slice(out, func(i, j int) bool {
		mi, mj := s.players[out[i]].Mean(), s.players[out[j]].Mean()
		if mi != mj {
			return mi > mj
		}
		return out[i] < out[j]
	})
	return out
}

// Validate checks the cross-player sanity invariant: quarters are zero-sum
// within every round, so the grand total must stay near zero.
func (s *Statistics) Validate() error {
	var total float64
	for _, ps := range s.players {
		total += ps.Sum
	}
	if limit := 0.01 * float64(s.Rounds+1); math.Abs(total) > limit {
		return fmt.Errorf("aggregate quarters %+.4f exceed zero-sum drift limit %.4f over %d rounds", total, limit, s.Rounds)
	}
	return nil
}

// Report renders a plain-text summary table.
func (s *Statistics) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rounds=%d holes=%d pushes=%d solos=%d reviews=%d max_multiplier=%d\n",
		s.Rounds, s.Holes, s.Pushes, s.Solos, s.ManualReviews, s.MaxMultiplier)
	for _, pid := range s.Players() {
		ps := s.players[pid]
		lo, hi := ps.ConfidenceInterval95()
		name := string(pid)
		if personality := s.personalities[pid]; personality != "" {
			name = fmt.Sprintf("%s (%s)", pid, personality)
		}
		fmt.Fprintf(&b, "%-28s mean=%+.3fq/round median=%+.3f ci95=[%+.3f, %+.3f] best=%+.2f worst=%+.2f\n",
			name, ps.Mean(), ps.Median(), lo, hi, ps.Best, ps.Worst)
	}
	return b.String()
}
