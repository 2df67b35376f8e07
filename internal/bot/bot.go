// Package bot provides DecisionProvider implementations with distinct
// personalities for simulation and demo play. Bots receive read-only game
// views and never touch engine state directly.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/fairwaylabs/wolfgoatpig/internal/game"
)

// Personality names a built-in bot style.
type Personality string

const (
	Conservative Personality = "conservative"
	Aggressive   Personality = "aggressive"
	Random       Personality = "random"
)

// Personalities lists the built-in styles in a stable order.
func Personalities() []Personality {
	return []Personality{Conservative, Aggressive, Random}
}

// New builds a provider for the named personality. The rng is only consumed
// by Random; the deterministic personalities ignore it.
func New(p Personality, rng *rand.Rand, logger *log.Logger) (game.DecisionProvider, error) {
	switch p {
	case Conservative:
		return NewConservativeBot(logger), nil
	case Aggressive:
		return NewAggressiveBot(logger), nil
	case Random:
		return NewRandBot(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown bot personality %q", p)
	}
}

// goatGap returns how far self sits behind the leader, in quarters. Positive
// means behind.
func goatGap(view game.GameView) float64 {
	best := view.Self.Points
	for _, p := range view.Players {
		if p.Points > best {
			best = p.Points
		}
	}
	return best - view.Self.Points
}

// bestCandidate picks the candidate with the lowest handicap: the strongest
// partner on paper.
func bestCandidate(view game.GameView, candidates []game.PlayerID) game.PlayerID {
	byID := make(map[game.PlayerID]game.PlayerView, len(view.Players))
	for _, p := range view.Players {
		byID[p.ID] = p
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if byID[c].Handicap < byID[best].Handicap {
			best = c
		}
	}
	return best
}
