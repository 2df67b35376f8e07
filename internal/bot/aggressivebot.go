package bot

import (
	"github.com/charmbracelet/log"

	"github.com/fairwaylabs/wolfgoatpig/internal/game"
)

// AggressiveBot hunts multipliers: it goes solo when trailing, offers and
// accepts doubles, tosses Aardvarks and takes every Big Dick challenge.
type AggressiveBot struct {
	logger *log.Logger
}

// NewAggressiveBot creates a new AggressiveBot instance.
func NewAggressiveBot(logger *log.Logger) *AggressiveBot {
	return &AggressiveBot{logger: logger}
}

func (b *AggressiveBot) ChoosePartner(view game.GameView, candidates []game.PlayerID) game.PartnerDecision {
	// Trailing by two or more quarters: go solo for the doubled payout.
	if goatGap(view) >= 2 || len(candidates) == 0 {
		b.logger.Debug("aggressive: going solo", "hole", view.Hole, "gap", goatGap(view))
		return game.PartnerDecision{GoSolo: true}
	}
	return game.PartnerDecision{Target: bestCandidate(view, candidates)}
}

func (b *AggressiveBot) RespondPartner(view game.GameView, captain game.PlayerID) bool {
	// Decline when well ahead: forcing the captain solo doubles the wager.
	return goatGap(view) > 0
}

func (b *AggressiveBot) OfferDouble(view game.GameView) bool {
	return view.Multiplier*2 <= game.MaxMultiplier
}

func (b *AggressiveBot) RespondDouble(view game.GameView) bool {
	return true
}

func (b *AggressiveBot) ChooseAardvarkSide(view game.GameView) game.SideID {
	return game.SideCaptain
}

func (b *AggressiveBot) TossAardvark(view game.GameView, aardvark game.PlayerID) bool {
	// Triple risk reads as triple reward here.
	return view.Multiplier*3 <= game.MaxMultiplier+1
}

func (b *AggressiveBot) VoteBigDick(view game.GameView, invoker game.PlayerID) bool {
	return true
}
