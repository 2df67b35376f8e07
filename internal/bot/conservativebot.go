package bot

import (
	"github.com/charmbracelet/log"

	"github.com/fairwaylabs/wolfgoatpig/internal/game"
)

// ConservativeBot partners with the strongest available player, never goes
// solo, declines doubles once the stake gets heavy and stays out of special
// bets.
type ConservativeBot struct {
	logger *log.Logger
}

// NewConservativeBot creates a new ConservativeBot instance.
func NewConservativeBot(logger *log.Logger) *ConservativeBot {
	return &ConservativeBot{logger: logger}
}

func (b *ConservativeBot) ChoosePartner(view game.GameView, candidates []game.PlayerID) game.PartnerDecision {
	if len(candidates) == 0 {
		return game.PartnerDecision{GoSolo: true}
	}
	target := bestCandidate(view, candidates)
	b.logger.Debug("conservative: inviting strongest partner", "hole", view.Hole, "target", target)
	return game.PartnerDecision{Target: target}
}

func (b *ConservativeBot) RespondPartner(view game.GameView, captain game.PlayerID) bool {
	// A partner halves the risk; always accept.
	return true
}

func (b *ConservativeBot) OfferDouble(view game.GameView) bool {
	return false
}

func (b *ConservativeBot) RespondDouble(view game.GameView) bool {
	// Accept cheap doubles, concede once the stake would pass four quarters.
	accept := view.Stake*2 <= 4
	if !accept {
		b.logger.Debug("conservative: conceding to a double", "hole", view.Hole, "stake", view.Stake)
	}
	return accept
}

func (b *ConservativeBot) ChooseAardvarkSide(view game.GameView) game.SideID {
	// Join the captain's side only when the captain leads the game.
	for _, p := range view.Players {
		if p.ID == view.Captain && p.Points > view.Self.Points {
			return game.SideCaptain
		}
	}
	return game.SideField
}

func (b *ConservativeBot) TossAardvark(view game.GameView, aardvark game.PlayerID) bool {
	// A toss triples the stake; never worth it.
	return false
}

func (b *ConservativeBot) VoteBigDick(view game.GameView, invoker game.PlayerID) bool {
	return false
}
