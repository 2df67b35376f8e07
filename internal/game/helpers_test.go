package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestGame builds an n-player game with scratch players p1..pn, a one
// quarter base wager and the standard course.
func newTestGame(t *testing.T, n int, opts ...Option) *State {
	t.Helper()
	players := make([]PlayerSetup, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, PlayerSetup{
			ID:   PlayerID(fmt.Sprintf("p%d", i)),
			Name: fmt.Sprintf("Player %d", i),
		})
	}
	s, err := NewGame(Config{
		Rules:   RulesConfig{BaseWager: 1},
		Course:  StandardCourse(),
		Players: players,
	}, opts...)
	require.NoError(t, err)
	return s
}

// formPartners resolves the current hole into captain+partner vs the field.
func formPartners(t *testing.T, s *State, partner PlayerID) {
	t.Helper()
	require.NoError(t, s.RequestPartner(s.Captain(), partner))
	require.NoError(t, s.RespondPartner(true))
}

// recordScores reports gross scores in player order p1..pn.
func recordScores(t *testing.T, s *State, gross ...float64) {
	t.Helper()
	require.Len(t, gross, len(s.Players))
	for i, g := range gross {
		require.NoError(t, s.RecordScore(s.Players[i].ID, g))
	}
}

// settle advances the hole and returns its result.
func settle(t *testing.T, s *State) *HoleResult {
	t.Helper()
	result, err := s.SettleHole()
	require.NoError(t, err)
	return result
}
