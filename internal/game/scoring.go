package game

import (
	"math"
	"sort"
)

// Settlement. Quarters are tracked as float64 because half-quarters appear
// in even splits and 3-for-2 payouts, but all arithmetic stays on quarter
// (0.25) granularity so the zero-sum comparison is exact well inside the
// 0.01 tolerance.

// zeroSumTolerance bounds the settlement postcondition |sum(deltas)|.
const zeroSumTolerance = 0.01

// SettleHole settles the current hole: it computes per-player point deltas
// from net scores, teams and the wager state, verifies the zero-sum
// invariant, applies the deltas, appends the HoleResult to the history and
// advances to the next hole (or finishes the round after hole 18).
func (s *State) SettleHole() (*HoleResult, error) {
	if s.Finished {
		return nil, ruleViolationf(CodeHoleSettled, "round is finished")
	}
	if !s.Teams.Resolved() {
		return nil, validationf("teams", "teams not resolved on hole %d (%s)", s.CurrentHole, s.Teams.Kind)
	}
	if s.Betting.Pending != nil {
		return nil, validationf("betting", "a double offer is unanswered on hole %d", s.CurrentHole)
	}

	hole, err := s.Course.HoleByNumber(s.CurrentHole)
	if err != nil {
		return nil, err
	}

	result := &HoleResult{
		Hole:        s.CurrentHole,
		Phase:       s.Phase,
		Teams:       *s.Teams.clone(),
		Wager:       s.Betting.BaseWager + s.Betting.CarryOver,
		Multiplier:  s.Betting.Multiplier,
		PointsDelta: make(map[PlayerID]float64, len(s.Players)),
		Notes:       append([]string(nil), s.HoleProgress.Notes...),
	}
	stake := float64(s.Betting.Stake())

	var winner SideID
	switch {
	case s.Betting.Forfeit != "":
		winner = s.Betting.Forfeit.Other()
		result.Notes = append(result.Notes, "hole conceded on a declined double")
	default:
		captainTotal, fieldTotal, err := s.sideNetTotals(hole)
		if err != nil {
			return nil, err
		}
		if captainTotal == fieldTotal {
			return s.settlePush(result, int(stake))
		}
		if captainTotal < fieldTotal {
			winner = SideCaptain
		} else {
			winner = SideField
		}
	}
	result.Winner = winner

	pot := stake
	sp := s.Betting.Special
	if (sp.Kind == SpecialDuncan || sp.Kind == SpecialTunkarri) && winner == SideCaptain && s.Betting.Forfeit == "" {
		// 3-for-2: the soloist collects three quarters for every two staked.
		pot = stake * 1.5
		result.Notes = append(result.Notes, string(sp.Kind)+" pays 3-for-2")
	}

	winners := s.Teams.Members(winner)
	losers := s.Teams.Members(winner.Other())
	if len(winners) == 0 || len(losers) == 0 {
		return nil, consistencyf("hole %d has an empty side at settlement", s.CurrentHole)
	}

	reviewW := s.splitPot(result.PointsDelta, winners, pot, +1)
	reviewL := s.splitPot(result.PointsDelta, losers, pot, -1)
	result.NeedsManualReview = reviewW || reviewL
	if result.NeedsManualReview {
		result.Notes = append(result.Notes, "hanging chad: Karl Marx adjustment unresolved, review required")
	}

	s.applyFloat(result.PointsDelta)
	s.applyAckerleyOptOuts(result.PointsDelta)

	// Double-points holes: 17 and 18 settle at twice the deltas unless the
	// stake was already raised inside a Hoepfinger multiplier context.
	if s.CurrentHole >= 17 && !s.Betting.HoepfingerDoubled {
		for pid := range result.PointsDelta {
			result.PointsDelta[pid] *= 2
		}
		result.Notes = append(result.Notes, "double points hole")
	}

	s.applyBigDick(result, winner)

	var sum float64
	for _, d := range result.PointsDelta {
		sum += d
	}
	if math.Abs(sum) > zeroSumTolerance {
		return nil, consistencyf("hole %d settlement is not zero-sum: deltas total %+.4f quarters", s.CurrentHole, sum)
	}

	s.finalizeHole(result, 0)
	return result, nil
}

// sideNetTotals sums handicap-adjusted net scores per side.
func (s *State) sideNetTotals(hole Hole) (captain, field float64, err error) {
	for _, p := range s.Players {
		if _, ok := s.HoleProgress.GrossScores[p.ID]; !ok {
			return 0, 0, validationf("gross", "no gross score recorded for %s on hole %d", p.ID, s.CurrentHole)
		}
	}
	total := func(side []PlayerID) (float64, error) {
		var sum float64
		for _, pid := range side {
			p := s.playerByID(pid)
			strokes, err := CalculateStrokes(p.Handicap, hole.StrokeIndex)
			if err != nil {
				return 0, err
			}
			sum += CalculateNetScore(s.HoleProgress.GrossScores[pid], strokes)
		}
		return sum, nil
	}
	if captain, err = total(s.Teams.CaptainSide); err != nil {
		return 0, 0, err
	}
	if field, err = total(s.Teams.FieldSide); err != nil {
		return 0, 0, err
	}
	return captain, field, nil
}

// settlePush records a tied hole: all deltas zero, the whole pot carries
// over into the next hole's wager. Consecutive pushes accumulate.
func (s *State) settlePush(result *HoleResult, stake int) (*HoleResult, error) {
	result.Push = true
	result.CarryOverAmount = stake
	for _, p := range s.Players {
		result.PointsDelta[p.ID] = 0
	}
	result.Notes = append(result.Notes, "push: pot carries over")
	s.finalizeHole(result, stake)
	return result, nil
}

// splitPot distributes pot quarters over one side, sign +1 for winners and
// -1 for losers. Even-sized or evenly-divisible splits are exact; otherwise
// the Karl Marx rule assigns the odd quarters away from the side's Goat
// (smaller loss, larger win). Returns true when a points tie makes that
// assignment ambiguous, in which case the side falls back to the even split
// and the hole is flagged for manual review.
func (s *State) splitPot(deltas map[PlayerID]float64, side []PlayerID, pot float64, sign float64) (needsReview bool) {
	n := len(side)
	share := pot / float64(n)
	if isQuarterMultiple(share) {
		for _, pid := range side {
			deltas[pid] = sign * share
		}
		return false
	}

	// Work in integer quarter units. pot is always a multiple of 0.5, so
	// totalQ is exact.
	totalQ := int(math.Round(pot * 4))
	baseQ := totalQ / n
	remQ := totalQ % n

	// Order the side by cumulative points: its Goat first. Winners hand the
	// extra quarters to the Goat; losers push them onto the best-placed.
	ordered := append([]PlayerID(nil), side...)
	pos := make(map[PlayerID]int, len(s.Order))
	for i, pid := range s.Order {
		pos[pid] = i
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := s.playerByID(ordered[i]), s.playerByID(ordered[j])
		if pi.Points != pj.Points {
			return pi.Points < pj.Points
		}
		return pos[ordered[i]] < pos[ordered[j]]
	})
	if sign < 0 {
		// Losers: extra quarters go to the highest points, Goat pays least.
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	// A tie across the boundary between extra-quarter payers/receivers is
	// the hanging chad: ambiguous in the source rules, never auto-resolved.
	if remQ > 0 {
		boundary := s.playerByID(ordered[remQ-1])
		next := s.playerByID(ordered[remQ])
		if boundary.Points == next.Points {
			for _, pid := range side {
				deltas[pid] = sign * share
			}
			return true
		}
	}

	for i, pid := range ordered {
		q := baseQ
		if i < remQ {
			q++
		}
		deltas[pid] = sign * float64(q) / 4
	}
	return false
}

// isQuarterMultiple reports whether v lands exactly on quarter granularity.
func isQuarterMultiple(v float64) bool {
	scaled := v * 4
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

// applyFloat doubles the floating captain's personal stake. The difference
// is absorbed evenly by the opposing side so the hole stays zero-sum.
func (s *State) applyFloat(deltas map[PlayerID]float64) {
	fb := s.Betting.FloatInvokedBy
	if fb == "" {
		return
	}
	side, ok := s.Teams.SideOf(fb)
	if !ok {
		return
	}
	extra := deltas[fb]
	if extra == 0 {
		return
	}
	deltas[fb] *= 2
	opposing := s.Teams.Members(side.Other())
	for _, pid := range opposing {
		deltas[pid] -= extra / float64(len(opposing))
	}
}

// applyAckerleyOptOuts rescales opted-out players to the multiplier frozen
// at their opt-out, shifting the difference onto the opposing side.
func (s *State) applyAckerleyOptOuts(deltas map[PlayerID]float64) {
	sp := s.Betting.Special
	if sp.Kind != SpecialAckerley || len(sp.OptOuts) == 0 {
		return
	}
	final := float64(s.Betting.Multiplier)
	for pid, frozen := range sp.OptOuts {
		side, ok := s.Teams.SideOf(pid)
		if !ok || float64(frozen) == final {
			continue
		}
		d := deltas[pid]
		scaled := d * float64(frozen) / final
		diff := d - scaled
		deltas[pid] = scaled
		opposing := s.Teams.Members(side.Other())
		for _, op := range opposing {
			deltas[op] += diff / float64(len(opposing))
		}
	}
}

// applyBigDick resolves an armed 18th-hole challenge: the invoker's entire
// pre-hole winnings ride on the hole, double on a win, gone on a loss, the
// counterweight spread evenly over the other players.
func (s *State) applyBigDick(result *HoleResult, winner SideID) {
	sp := s.Betting.Special
	if sp.Kind != SpecialBigDick || !sp.Armed || sp.Voided {
		if sp.Kind == SpecialBigDick {
			result.Notes = append(result.Notes, "big dick challenge voided")
		}
		return
	}
	invoker := s.playerByID(sp.Invoker)
	stake := invoker.Points
	if stake <= 0 {
		return
	}
	side, ok := s.Teams.SideOf(sp.Invoker)
	if !ok {
		return
	}
	perOther := stake / float64(len(s.Players)-1)
	won := side == winner
	for _, p := range s.Players {
		switch {
		case p.ID == sp.Invoker && won:
			result.PointsDelta[p.ID] += stake
		case p.ID == sp.Invoker:
			result.PointsDelta[p.ID] -= stake
		case won:
			result.PointsDelta[p.ID] -= perOther
		default:
			result.PointsDelta[p.ID] += perOther
		}
	}
	if won {
		result.Notes = append(result.Notes, "big dick: winnings doubled")
	} else {
		result.Notes = append(result.Notes, "big dick: winnings forfeited")
	}
}

// finalizeHole applies deltas, archives the result and moves to the next
// hole. The history is append-only; results are never mutated afterwards.
func (s *State) finalizeHole(result *HoleResult, carryOver int) {
	for pid, d := range result.PointsDelta {
		if p := s.playerByID(pid); p != nil {
			p.Points += d
		}
	}
	s.History = append(s.History, *result)

	s.logger.Info("hole settled",
		"game", s.ID,
		"hole", result.Hole,
		"winner", string(result.Winner),
		"push", result.Push,
		"multiplier", result.Multiplier,
		"carry_over", carryOver)
	s.publish(HoleSettledEvent{Result: *result})

	if result.Hole >= 18 {
		s.Finished = true
		return
	}
	s.startHole(result.Hole+1, carryOver)
}
