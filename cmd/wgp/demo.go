package main

import (
	"fmt"
	"strings"

	"github.com/fairwaylabs/wolfgoatpig/internal/game"
	"github.com/fairwaylabs/wolfgoatpig/internal/simulator"
)

// DemoCmd plays one bot-driven round and prints it hole by hole.
type DemoCmd struct {
	Config   string `short:"c" default:"wgp.hcl" help:"HCL configuration file (defaults apply if missing)"`
	Seed     int64  `default:"1" help:"RNG seed for the round"`
	LogLevel string `default:"warn" help:"Log level: debug, info, warn, error"`
}

func (cmd *DemoCmd) Run() error {
	cfg, err := simulator.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	cfg.Simulation.Rounds = 1
	cfg.Simulation.Seed = cmd.Seed
	logger := setupLogger(cmd.LogLevel)

	sim := simulator.New(cfg, simulator.WithLogger(logger))
	result, state, err := sim.PlayRound(0)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Round %s, seed %d", state.ID, result.Seed)))
	for _, h := range state.History {
		printHole(h)
	}

	fmt.Println(headerStyle.Render("Final standings"))
	for _, p := range state.Standings() {
		line := fmt.Sprintf("  %-12s %+6.2f quarters", p.Name, p.Points)
		if p.Points >= 0 {
			fmt.Println(winStyle.Render(line))
		} else {
			fmt.Println(lossStyle.Render(line))
		}
	}
	return nil
}

func printHole(h game.HoleResult) {
	var outcome string
	switch {
	case h.Push:
		outcome = noteStyle.Render(fmt.Sprintf("push, %dq carried", h.CarryOverAmount))
	default:
		outcome = fmt.Sprintf("%s side wins", h.Winner)
	}
	fmt.Printf("hole %2d [%s] wager %dq x%d  %s vs %s  %s\n",
		h.Hole, h.Phase, h.Wager, h.Multiplier,
		joinIDs(h.Teams.CaptainSide), joinIDs(h.Teams.FieldSide), outcome)
	for _, note := range h.Notes {
		fmt.Println("         " + noteStyle.Render(note))
	}
}

func joinIDs(ids []game.PlayerID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, "+")
}
