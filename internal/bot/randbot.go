package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/fairwaylabs/wolfgoatpig/internal/game"
)

// RandBot makes uniform random legal choices. Useful as a baseline and for
// shaking out engine edge cases in long simulations.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance.
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (b *RandBot) ChoosePartner(view game.GameView, candidates []game.PlayerID) game.PartnerDecision {
	if len(candidates) == 0 || b.rng.IntN(4) == 0 {
		return game.PartnerDecision{GoSolo: true}
	}
	return game.PartnerDecision{Target: candidates[b.rng.IntN(len(candidates))]}
}

func (b *RandBot) RespondPartner(view game.GameView, captain game.PlayerID) bool {
	return b.rng.IntN(2) == 0
}

func (b *RandBot) OfferDouble(view game.GameView) bool {
	return view.Multiplier*2 <= game.MaxMultiplier && b.rng.IntN(6) == 0
}

func (b *RandBot) RespondDouble(view game.GameView) bool {
	return b.rng.IntN(3) != 0
}

func (b *RandBot) ChooseAardvarkSide(view game.GameView) game.SideID {
	if b.rng.IntN(2) == 0 {
		return game.SideCaptain
	}
	return game.SideField
}

func (b *RandBot) TossAardvark(view game.GameView, aardvark game.PlayerID) bool {
	return b.rng.IntN(4) == 0
}

func (b *RandBot) VoteBigDick(view game.GameView, invoker game.PlayerID) bool {
	return b.rng.IntN(2) == 0
}
