package game

// GamePhase partitions the round into its three rule regimes.
type GamePhase int

const (
	PhaseRegular GamePhase = iota
	PhaseVinniesVariation
	PhaseHoepfinger
)

func (p GamePhase) String() string {
	return [...]string{"regular", "vinnies_variation", "hoepfinger"}[p]
}

// MarshalText implements encoding.TextMarshaler for snapshot serialization.
func (p GamePhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *GamePhase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "regular":
		*p = PhaseRegular
	case "vinnies_variation":
		*p = PhaseVinniesVariation
	case "hoepfinger":
		*p = PhaseHoepfinger
	default:
		return validationf("phase", "unknown phase %q", string(b))
	}
	return nil
}

// HoepfingerStart returns the first Hoepfinger hole for a player count.
func HoepfingerStart(playerCount int) int {
	switch playerCount {
	case 4:
		return 17
	case 5:
		return 16
	case 6:
		return 13
	}
	return 19 // never reached for a valid player count
}

// DeterminePhase is a pure function of hole number and player count.
// Vinnie's Variation (doubled base wager) covers holes 13-16 in 4-man games
// only; Hoepfinger takes over at 17/16/13 for 4/5/6-man games.
func DeterminePhase(holeNumber, playerCount int) GamePhase {
	if holeNumber >= HoepfingerStart(playerCount) {
		return PhaseHoepfinger
	}
	if playerCount == 4 && holeNumber >= 13 && holeNumber <= 16 {
		return PhaseVinniesVariation
	}
	return PhaseRegular
}

// CaptainForHole rotates the captaincy through the fixed player order with
// wraparound, so the cycle period equals the player count.
func CaptainForHole(holeNumber int, order []PlayerID) PlayerID {
	return order[(holeNumber-1)%len(order)]
}

// HittingOrderForHole rotates the setup order so the hole's captain hits
// first.
func HittingOrderForHole(holeNumber int, order []PlayerID) []PlayerID {
	n := len(order)
	start := (holeNumber - 1) % n
	rotated := make([]PlayerID, 0, n)
	for i := 0; i < n; i++ {
		rotated = append(rotated, order[(start+i)%n])
	}
	return rotated
}

// Goat returns the player with the lowest cumulative points. Ties break to
// the earliest player in the supplied order; tied reports whether a tie was
// broken that way.
func Goat(players []*Player, order []PlayerID) (id PlayerID, tied bool) {
	byID := make(map[PlayerID]*Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	first := true
	var low float64
	for _, pid := range order {
		p := byID[pid]
		if p == nil {
			continue
		}
		if first || p.Points < low {
			id, low, first, tied = p.ID, p.Points, false, false
		} else if p.Points == low {
			tied = true
		}
	}
	return id, tied
}

// SelectGoatPosition applies the Goat's Hoepfinger choice of hitting-order
// position. Only valid during Hoepfinger. In 6-man games a position the Goat
// chose on the previous two consecutive holes is rejected.
func (s *State) SelectGoatPosition(goat PlayerID, position int) error {
	if s.Phase != PhaseHoepfinger {
		return ruleViolationf(CodeWrongPhase, "goat position selection only valid in Hoepfinger, current phase %s", s.Phase)
	}
	goatID, _ := Goat(s.Players, s.Order)
	if goat != goatID {
		return ruleViolationf(CodeInvalidTarget, "player %s is not the Goat (%s is)", goat, goatID)
	}
	n := len(s.Players)
	if position < 1 || position > n {
		return validationf("position", "position %d outside 1-%d", position, n)
	}
	if n == 6 && len(s.GoatPositionHistory) >= 2 {
		h := s.GoatPositionHistory
		if h[len(h)-1] == position && h[len(h)-2] == position {
			return ruleViolationf(CodePositionRepeated,
				"position %d chosen on the previous two holes", position)
		}
	}

	// Rebuild the hitting order with the Goat slotted at the chosen
	// position and everyone else keeping their relative order.
	rest := make([]PlayerID, 0, n-1)
	for _, pid := range s.HittingOrder {
		if pid != goat {
			rest = append(rest, pid)
		}
	}
	reordered := make([]PlayerID, 0, n)
	reordered = append(reordered, rest[:position-1]...)
	reordered = append(reordered, goat)
	reordered = append(reordered, rest[position-1:]...)
	s.HittingOrder = reordered
	s.GoatPositionHistory = append(s.GoatPositionHistory, position)
	return nil
}
