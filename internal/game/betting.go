package game

// Wager escalation. The multiplier runs 1-8 (three redoubles at most) and the
// wagering window for every mutating call closes once a ball has been struck
// from in front of the line of scrimmage.

// MaxMultiplier caps the doubling chain at three redoubles.
const MaxMultiplier = 8

// SpecialBetKind is the tagged variant of the hole's special bet. At most one
// special bet is active per hole, which makes illegal combinations
// unrepresentable.
type SpecialBetKind string

const (
	SpecialNone     SpecialBetKind = "none"
	SpecialDuncan   SpecialBetKind = "duncan"
	SpecialTunkarri SpecialBetKind = "tunkarri"
	SpecialBigDick  SpecialBetKind = "big_dick"
	SpecialAckerley SpecialBetKind = "ackerley"
)

// SpecialBet carries the active special bet and its variant-specific state.
type SpecialBet struct {
	Kind    SpecialBetKind `json:"kind"`
	Invoker PlayerID       `json:"invoker,omitempty"`

	// Votes tracks Big Dick acceptance per non-invoker. The challenge arms
	// only when every remaining player has accepted; a single decline voids
	// it.
	Votes  map[PlayerID]bool `json:"votes,omitempty"`
	Armed  bool              `json:"armed,omitempty"`
	Voided bool              `json:"voided,omitempty"`

	// OptOuts maps an Ackerley's Gambit opt-out to the multiplier frozen
	// for that player at the moment they opted out.
	OptOuts map[PlayerID]int `json:"opt_outs,omitempty"`
}

// DoubleOffer is an outstanding, unanswered double.
type DoubleOffer struct {
	From SideID `json:"from"`
}

// BettingState is the per-hole wager state. BaseWager and CarryOver are whole
// quarters; lifetime player flags (float used) live on Player.
type BettingState struct {
	BaseWager  int `json:"base_wager"`
	Multiplier int `json:"multiplier"`
	CarryOver  int `json:"carry_over"`
	Redoubles  int `json:"redoubles"`

	Pending       *DoubleOffer `json:"pending,omitempty"`
	LastDoubledBy SideID       `json:"last_doubled_by,omitempty"`

	// Forfeit names the side that declined a double, conceding the hole at
	// the stake in play before the offer.
	Forfeit SideID `json:"forfeit,omitempty"`

	Special SpecialBet `json:"special"`

	FloatInvokedBy PlayerID `json:"float_invoked_by,omitempty"`
	OptionActive   bool     `json:"option_active,omitempty"`

	// HoepfingerDoubled records that the stake was already raised by a
	// Hoepfinger-phase mechanism, which suppresses the hole 17-18 delta
	// doubling (no double-doubling).
	HoepfingerDoubled bool `json:"hoepfinger_doubled,omitempty"`

	// LineClosed is set once any ball has been struck from in front of the
	// line of scrimmage; it shuts the wagering window for the hole.
	LineClosed bool `json:"line_closed,omitempty"`
}

func newBettingState(baseWager, carryOver int) BettingState {
	return BettingState{
		BaseWager:  baseWager,
		Multiplier: 1,
		CarryOver:  carryOver,
		Special:    SpecialBet{Kind: SpecialNone},
	}
}

// Stake returns the quarters at risk per side at the current multiplier,
// carry-over included.
func (b *BettingState) Stake() int {
	return (b.BaseWager + b.CarryOver) * b.Multiplier
}

func (b *BettingState) clone() BettingState {
	c := *b
	if b.Pending != nil {
		p := *b.Pending
		c.Pending = &p
	}
	if b.Special.Votes != nil {
		c.Special.Votes = make(map[PlayerID]bool, len(b.Special.Votes))
		for k, v := range b.Special.Votes {
			c.Special.Votes[k] = v
		}
	}
	if b.Special.OptOuts != nil {
		c.Special.OptOuts = make(map[PlayerID]int, len(b.Special.OptOuts))
		for k, v := range b.Special.OptOuts {
			c.Special.OptOuts[k] = v
		}
	}
	return c
}

// requireOpenWindow rejects wagering mutations after the line of scrimmage
// has been breached or the hole conceded.
func (s *State) requireOpenWindow() error {
	if s.Betting.LineClosed {
		return ruleViolationf(CodeDoubleAfterLine, "wagering window closed at the line of scrimmage on hole %d", s.CurrentHole)
	}
	if s.Betting.Forfeit != "" {
		return ruleViolationf(CodeHoleSettled, "hole %d conceded by the %s side", s.CurrentHole, s.Betting.Forfeit)
	}
	return nil
}

func (s *State) requireNoSpecial() error {
	if s.Betting.Special.Kind != SpecialNone {
		return ruleViolationf(CodeSpecialBetActive, "special bet %s already active this hole", s.Betting.Special.Kind)
	}
	return nil
}

// OfferDouble proposes doubling the stake. Redoubles alternate sides: the
// side that last doubled cannot double again until answered in kind.
func (s *State) OfferDouble(offeringSide SideID) error {
	if err := s.requireOpenWindow(); err != nil {
		return err
	}
	if s.Betting.Pending != nil {
		return ruleViolationf(CodeSpecialBetActive, "a double offer from %s is already outstanding", s.Betting.Pending.From)
	}
	if s.Betting.Multiplier*2 > MaxMultiplier {
		return ruleViolationf(CodeMultiplierCapExceeded, "multiplier %d cannot be doubled past %d", s.Betting.Multiplier, MaxMultiplier)
	}
	if s.Betting.LastDoubledBy == offeringSide {
		return ruleViolationf(CodeInvalidTarget, "the %s side doubled last and must wait for a redouble", offeringSide)
	}
	s.Betting.Pending = &DoubleOffer{From: offeringSide}
	s.publish(WagerChangedEvent{Hole: s.CurrentHole, Multiplier: s.Betting.Multiplier, Detail: "double offered by " + string(offeringSide)})
	return nil
}

// RespondDouble answers the outstanding offer. Accepting doubles the
// multiplier; declining concedes the hole to the offering side at the stake
// in play before the offer.
func (s *State) RespondDouble(accept bool) error {
	if s.Betting.Pending == nil {
		return ruleViolationf(CodeNoPendingOffer, "no double offer outstanding")
	}
	offer := *s.Betting.Pending
	if !accept {
		s.Betting.Pending = nil
		s.Betting.Forfeit = offer.From.Other()
		s.publish(WagerChangedEvent{Hole: s.CurrentHole, Multiplier: s.Betting.Multiplier, Detail: "double declined, hole conceded"})
		return nil
	}
	// Cap check before the offer is consumed: a rejected accept leaves the
	// offer outstanding so the responder can still decline.
	if s.Betting.Multiplier*2 > MaxMultiplier {
		return ruleViolationf(CodeMultiplierCapExceeded, "multiplier %d cannot be doubled past %d", s.Betting.Multiplier, MaxMultiplier)
	}
	s.Betting.Pending = nil
	s.Betting.Multiplier *= 2
	s.Betting.Redoubles++
	s.Betting.LastDoubledBy = offer.From
	s.publish(WagerChangedEvent{Hole: s.CurrentHole, Multiplier: s.Betting.Multiplier, Detail: "double accepted"})
	return nil
}

// InvokeFloat doubles the captain's personal stake for the hole. Each player
// gets one float per round.
func (s *State) InvokeFloat(captain PlayerID) error {
	if err := s.requireOpenWindow(); err != nil {
		return err
	}
	if captain != s.Captain() {
		return ruleViolationf(CodeNotCaptain, "%s is not the captain on hole %d", captain, s.CurrentHole)
	}
	p := s.playerByID(captain)
	if p == nil {
		return validationf("player", "unknown player %s", captain)
	}
	if p.FloatUsed {
		return ruleViolationf(CodeFloatAlreadyUsed, "%s has already used their float this round", captain)
	}
	p.FloatUsed = true
	s.Betting.FloatInvokedBy = captain
	s.publish(WagerChangedEvent{Hole: s.CurrentHole, Multiplier: s.Betting.Multiplier, Detail: "float invoked by " + string(captain)})
	return nil
}

// ToggleOption flips the Option. When enabled and the captain is strictly the
// Goat (lowest cumulative points, no tie), the stake auto-doubles; toggling
// the Option back off before the window closes reverts the double.
func (s *State) ToggleOption(captain PlayerID) error {
	if err := s.requireOpenWindow(); err != nil {
		return err
	}
	if captain != s.Captain() {
		return ruleViolationf(CodeNotCaptain, "%s is not the captain on hole %d", captain, s.CurrentHole)
	}
	if s.Betting.OptionActive {
		s.Betting.OptionActive = false
		if s.optionDoubleApplies(captain) {
			s.Betting.Multiplier /= 2
			if s.Phase == PhaseHoepfinger {
				s.Betting.HoepfingerDoubled = false
			}
		}
		return nil
	}
	if s.optionDoubleApplies(captain) {
		if s.Betting.Multiplier*2 > MaxMultiplier {
			return ruleViolationf(CodeMultiplierCapExceeded, "option double would push multiplier past %d", MaxMultiplier)
		}
		s.Betting.Multiplier *= 2
		if s.Phase == PhaseHoepfinger {
			s.Betting.HoepfingerDoubled = true
		}
		s.publish(WagerChangedEvent{Hole: s.CurrentHole, Multiplier: s.Betting.Multiplier, Detail: "option auto-double"})
	}
	s.Betting.OptionActive = true
	return nil
}

// optionDoubleApplies reports whether the Option's auto-double fires: the
// captain must be strictly the Goat. A tie at the bottom does not trigger it.
func (s *State) optionDoubleApplies(captain PlayerID) bool {
	goat, tied := Goat(s.Players, s.Order)
	return !tied && goat == captain
}

// InvokeBigDick opens the 18th-hole double-or-nothing challenge: the invoker
// stakes their entire accumulated winnings and needs unanimous acceptance
// from every other player.
func (s *State) InvokeBigDick(player PlayerID) error {
	if err := s.requireOpenWindow(); err != nil {
		return err
	}
	if err := s.requireNoSpecial(); err != nil {
		return err
	}
	if s.CurrentHole != 18 {
		return ruleViolationf(CodeWrongPhase, "Big Dick is only available on hole 18, current hole %d", s.CurrentHole)
	}
	p := s.playerByID(player)
	if p == nil {
		return validationf("player", "unknown player %s", player)
	}
	if p.Points <= 0 {
		return ruleViolationf(CodeInvalidTarget, "%s has no winnings to stake (%.2f quarters)", player, p.Points)
	}
	s.Betting.Special = SpecialBet{
		Kind:    SpecialBigDick,
		Invoker: player,
		Votes:   make(map[PlayerID]bool),
	}
	return nil
}

// BigDickVote records one player's answer to the challenge. Any decline
// voids it immediately; the challenge arms once every remaining player has
// accepted.
func (s *State) BigDickVote(voter PlayerID, accept bool) error {
	sp := &s.Betting.Special
	if sp.Kind != SpecialBigDick {
		return ruleViolationf(CodeNoPendingOffer, "no Big Dick challenge outstanding")
	}
	if sp.Voided {
		return ruleViolationf(CodeNotUnanimous, "challenge already voided by a declining player")
	}
	if voter == sp.Invoker {
		return ruleViolationf(CodeInvalidTarget, "the invoker does not vote on their own challenge")
	}
	if s.playerByID(voter) == nil {
		return validationf("player", "unknown player %s", voter)
	}
	if !accept {
		sp.Voided = true
		sp.Armed = false
		return nil
	}
	sp.Votes[voter] = true
	if len(sp.Votes) == len(s.Players)-1 {
		sp.Armed = true
	}
	return nil
}

// AckerleyGambit lets a player opt out of (or back into) further doubles on
// the current hole. The opt-out freezes that player's multiplier at its
// current value; it resets at the next hole.
func (s *State) AckerleyGambit(player PlayerID, optOut bool) error {
	if err := s.requireOpenWindow(); err != nil {
		return err
	}
	if s.playerByID(player) == nil {
		return validationf("player", "unknown player %s", player)
	}
	sp := &s.Betting.Special
	if sp.Kind != SpecialAckerley {
		if err := s.requireNoSpecial(); err != nil {
			return err
		}
		if !optOut {
			return ruleViolationf(CodeNoPendingOffer, "no gambit to opt back out of")
		}
		sp.Kind = SpecialAckerley
		sp.OptOuts = make(map[PlayerID]int)
	}
	if optOut {
		sp.OptOuts[player] = s.Betting.Multiplier
	} else {
		delete(sp.OptOuts, player)
		if len(sp.OptOuts) == 0 {
			s.Betting.Special = SpecialBet{Kind: SpecialNone}
		}
	}
	return nil
}
