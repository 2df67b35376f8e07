package game

// Decision points. Personality-driven behavior lives outside the state
// machine: the engine (or a simulation harness) calls a DecisionProvider at
// fixed points and stays deterministic itself. Providers receive read-only
// views and must not retain or mutate them.

// PlayerView is the read-only per-player state exposed to providers.
type PlayerView struct {
	ID       PlayerID
	Name     string
	Handicap float64
	Points   float64
	IsGoat   bool
}

// GameView is the read-only game state exposed to providers at a decision
// point.
type GameView struct {
	Hole       int
	Phase      GamePhase
	Captain    PlayerID
	Multiplier int
	Stake      int
	Special    SpecialBetKind
	Players    []PlayerView

	// Self is the player the decision is being requested from.
	Self PlayerView
}

// PartnerDecision is the captain's team-formation choice for a hole.
type PartnerDecision struct {
	GoSolo bool
	Target PlayerID // ignored when GoSolo
}

// DecisionProvider supplies the choices the rules engine cannot make for
// itself. One provider instance serves one player.
type DecisionProvider interface {
	// ChoosePartner is asked of the captain once the tee shots it wants to
	// see have been hit.
	ChoosePartner(view GameView, candidates []PlayerID) PartnerDecision

	// RespondPartner answers a partnership invitation.
	RespondPartner(view GameView, captain PlayerID) bool

	// OfferDouble reports whether the player's side should offer a double
	// at this point of the hole.
	OfferDouble(view GameView) bool

	// RespondDouble answers an opposing double offer; declining concedes
	// the hole.
	RespondDouble(view GameView) bool

	// ChooseAardvarkSide picks the side an Aardvark asks to join.
	ChooseAardvarkSide(view GameView) SideID

	// TossAardvark reports whether the receiving side throws a joining
	// Aardvark to the other side at triple risk.
	TossAardvark(view GameView, aardvark PlayerID) bool

	// VoteBigDick answers an 18th-hole double-or-nothing challenge.
	VoteBigDick(view GameView, invoker PlayerID) bool
}

// View builds the read-only game view for a given player.
func (s *State) View(self PlayerID) GameView {
	goat, _ := Goat(s.Players, s.Order)
	players := make([]PlayerView, 0, len(s.Players))
	var selfView PlayerView
	for _, p := range s.Players {
		pv := PlayerView{
			ID:       p.ID,
			Name:     p.Name,
			Handicap: p.Handicap,
			Points:   p.Points,
			IsGoat:   p.ID == goat,
		}
		players = append(players, pv)
		if p.ID == self {
			selfView = pv
		}
	}
	return GameView{
		Hole:       s.CurrentHole,
		Phase:      s.Phase,
		Captain:    s.Teams.Captain,
		Multiplier: s.Betting.Multiplier,
		Stake:      s.Betting.Stake(),
		Special:    s.Betting.Special.Kind,
		Players:    players,
		Self:       selfView,
	}
}
