package game

// PlayerID uniquely identifies a player within a game.
type PlayerID string

// Player is a participant in the round. Points are tracked in quarters and
// may carry half-quarter fractions after Karl Marx adjustments. Lifetime
// counters (FloatUsed, SoloCount, AardvarkTossCount) survive hole resets;
// everything else about a hole lives in HoleProgress and BettingState.
type Player struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	Handicap float64  `json:"handicap"`

	Points            float64 `json:"points"`
	FloatUsed         bool    `json:"float_used"`
	SoloCount         int     `json:"solo_count"`
	AardvarkTossCount int     `json:"aardvark_toss_count"`
}

// NewPlayer creates a player with a starting score of zero. Handicap domain
// is validated at game setup, not here.
func NewPlayer(id PlayerID, name string, handicap float64) *Player {
	return &Player{ID: id, Name: name, Handicap: handicap}
}

func (p *Player) clone() *Player {
	c := *p
	return &c
}
