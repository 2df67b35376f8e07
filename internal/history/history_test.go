package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylabs/wolfgoatpig/internal/game"
)

func finishedGame(t *testing.T) *game.State {
	t.Helper()
	players := []game.PlayerSetup{
		{ID: "p1", Name: "One"}, {ID: "p2", Name: "Two"},
		{ID: "p3", Name: "Three"}, {ID: "p4", Name: "Four"},
	}
	s, err := game.NewGame(game.Config{
		Rules:   game.RulesConfig{BaseWager: 1},
		Course:  game.StandardCourse(),
		Players: players,
	}, game.WithID("round-fixture"))
	require.NoError(t, err)

	for !s.Finished {
		require.NoError(t, s.RequestPartner(s.Captain(), s.HittingOrder[1]))
		require.NoError(t, s.RespondPartner(true))
		gross := []float64{4, 4, 4, 4}
		gross[(s.CurrentHole-1)%4] = 3
		for i, p := range s.Players {
			require.NoError(t, s.RecordScore(p.ID, gross[i]))
		}
		_, err := s.SettleHole()
		require.NoError(t, err)
	}
	return s
}

func TestFileWriterRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mock := quartz.NewMock(t)
	w, err := NewFileWriter(dir, WithClock(mock))
	require.NoError(t, err)

	s := finishedGame(t)
	require.NoError(t, w.WriteRound(s))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "round-fixture")

	rec, err := ReadRecord(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "round-fixture", rec.GameID)
	assert.True(t, rec.Finished)
	assert.Len(t, rec.Holes, 18)
	assert.Len(t, rec.Players, 4)
	assert.Equal(t, mock.Now().UTC(), rec.RecordedAt)

	var total float64
	for _, p := range rec.Players {
		total += p.Points
	}
	assert.InDelta(t, 0, total, 0.01)
}

func TestRecordFlagsReviewHoles(t *testing.T) {
	t.Parallel()

	s := finishedGame(t)
	rec := NewRecord(s, quartz.NewMock(t).Now())
	assert.Empty(t, rec.ReviewHoles, "clean round has nothing to review")
}

func TestReadRecordErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := ReadRecord(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{oops"), 0o644))
	_, err = ReadRecord(bad)
	require.Error(t, err)
}

func TestNoopWriter(t *testing.T) {
	t.Parallel()
	require.NoError(t, NoopWriter{}.WriteRound(finishedGame(t)))
}
