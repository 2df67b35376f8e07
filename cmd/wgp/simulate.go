package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fairwaylabs/wolfgoatpig/internal/history"
	"github.com/fairwaylabs/wolfgoatpig/internal/simulator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// SimulateCmd runs many bot-driven rounds and prints aggregate statistics.
type SimulateCmd struct {
	Config     string `short:"c" default:"wgp.hcl" help:"HCL configuration file (defaults apply if missing)"`
	Rounds     int    `help:"Override the configured number of rounds"`
	Seed       int64  `help:"Override the configured RNG seed"`
	HistoryDir string `help:"Archive every round as JSON into this directory"`
	LogLevel   string `default:"warn" help:"Log level: debug, info, warn, error"`
}

func (cmd *SimulateCmd) Run() error {
	cfg, err := simulator.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Rounds > 0 {
		cfg.Simulation.Rounds = cmd.Rounds
	}
	if cmd.Seed != 0 {
		cfg.Simulation.Seed = cmd.Seed
	}
	if cmd.HistoryDir != "" {
		cfg.Simulation.HistoryDir = cmd.HistoryDir
	}
	logger := setupLogger(cmd.LogLevel)

	opts := []simulator.SimulatorOption{simulator.WithLogger(logger)}
	if cfg.Simulation.HistoryDir != "" {
		writer, err := history.NewFileWriter(cfg.Simulation.HistoryDir, history.WithLogger(logger))
		if err != nil {
			return err
		}
		opts = append(opts, simulator.WithHistoryWriter(writer))
	}

	sim := simulator.New(cfg, opts...)
	logger.Info("simulation starting",
		"rounds", cfg.Simulation.Rounds,
		"players", len(cfg.Players),
		"seed", cfg.Simulation.Seed)

	stats, err := sim.Run(setupSignalHandler())
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("=== %d rounds, %d players ===", stats.Rounds, len(cfg.Players))))
	fmt.Print(stats.Report())
	if stats.ManualReviews > 0 {
		fmt.Println(noteStyle.Render(fmt.Sprintf("%d holes flagged for manual review", stats.ManualReviews)))
	}
	return nil
}
