package simulator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylabs/wolfgoatpig/internal/bot"
	"github.com/fairwaylabs/wolfgoatpig/internal/history"
)

func smallConfig(rounds int, seed int64) *Config {
	cfg := DefaultConfig()
	cfg.Simulation.Rounds = rounds
	cfg.Simulation.Seed = seed
	cfg.Simulation.Parallelism = 2
	return cfg
}

func TestRunCompletesAndStaysZeroSum(t *testing.T) {
	t.Parallel()

	sim := New(smallConfig(20, 7))
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, stats.Rounds)
	assert.Equal(t, 20*18, stats.Holes)
	require.NoError(t, stats.Validate())
	assert.Len(t, stats.Players(), 4)
	assert.GreaterOrEqual(t, stats.MaxMultiplier, 1)
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	run := func(seed int64) string {
		sim := New(smallConfig(10, seed))
		stats, err := sim.Run(context.Background())
		require.NoError(t, err)
		return stats.Report()
	}
	assert.Equal(t, run(42), run(42), "same seed must reproduce the same rounds")
	assert.NotEqual(t, run(42), run(43))
}

func TestRunFivePlayers(t *testing.T) {
	t.Parallel()

	cfg := smallConfig(10, 3)
	cfg.Players = append(cfg.Players, PlayerConfig{
		Name: "erin", Handicap: 9, Personality: string(bot.Aggressive),
	})
	require.NoError(t, cfg.Validate())

	stats, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.Players(), 5)
	require.NoError(t, stats.Validate())
}

func TestRunSixPlayers(t *testing.T) {
	t.Parallel()

	cfg := smallConfig(10, 11)
	cfg.Players = append(cfg.Players,
		PlayerConfig{Name: "erin", Handicap: 9, Personality: string(bot.Aggressive)},
		PlayerConfig{Name: "frank", Handicap: 30, Personality: string(bot.Random)},
	)
	stats, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.Players(), 6)
	require.NoError(t, stats.Validate())
}

func TestRunArchivesRounds(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer, err := history.NewFileWriter(dir)
	require.NoError(t, err)

	sim := New(smallConfig(3, 5), WithHistoryWriter(writer))
	_, err = sim.Run(context.Background())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	rec, err := history.ReadRecord(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.True(t, rec.Finished)
	assert.Len(t, rec.Holes, 18)
}

func TestRunHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(smallConfig(500, 1)).Run(ctx)
	require.Error(t, err)
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Simulation.Rounds, cfg.Simulation.Rounds)
	assert.Len(t, cfg.Players, 4)
}

func TestLoadConfigParsesHCL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sim.hcl")
	src := `
simulation {
  rounds      = 50
  seed        = 9
  base_wager  = 2
  parallelism = 8
}

player "wolf" {
  handicap    = 3
  personality = "aggressive"
}

player "goat" {
  handicap    = 15
  personality = "conservative"
}

player "pig" {
  handicap    = 20
  personality = "random"
}

player "hog" {
  handicap = 24
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Simulation.Rounds)
	assert.Equal(t, int64(9), cfg.Simulation.Seed)
	assert.Equal(t, 2, cfg.Simulation.BaseWager)
	require.Len(t, cfg.Players, 4)
	assert.Equal(t, "wolf", cfg.Players[0].Name)
	// Personality defaults to conservative when omitted.
	assert.Equal(t, string(bot.Conservative), cfg.Players[3].Personality)
}

func TestLoadConfigRejectsBadConfigs(t *testing.T) {
	t.Parallel()

	write := func(src string) string {
		path := filepath.Join(t.TempDir(), "sim.hcl")
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
		return path
	}

	_, err := LoadConfig(write(`simulation { rounds = `))
	require.Error(t, err, "malformed HCL")

	_, err = LoadConfig(write(`
player "a" { personality = "tight-passive" }
player "b" {}
player "c" {}
player "d" {}
`))
	require.Error(t, err, "unknown personality")

	_, err = LoadConfig(write(`
player "a" {}
player "a" {}
player "b" {}
player "c" {}
`))
	require.Error(t, err, "duplicate name")
}
