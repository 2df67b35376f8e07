package simulator

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/thoas/go-funk"

	"github.com/fairwaylabs/wolfgoatpig/internal/bot"
)

// Config holds configuration for running simulations.
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Players    []PlayerConfig     `hcl:"player,block"`
}

// SimulationSettings contains run-level configuration.
type SimulationSettings struct {
	Rounds      int    `hcl:"rounds,optional"`
	Seed        int64  `hcl:"seed,optional"`
	BaseWager   int    `hcl:"base_wager,optional"`
	Parallelism int    `hcl:"parallelism,optional"`
	HistoryDir  string `hcl:"history_dir,optional"`
	LogLevel    string `hcl:"log_level,optional"`
}

// PlayerConfig defines one simulated player.
type PlayerConfig struct {
	Name        string  `hcl:"name,label"`
	Handicap    float64 `hcl:"handicap,optional"`
	Personality string  `hcl:"personality,optional"`
}

// DefaultConfig returns a runnable 4-man configuration with mixed
// personalities.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Rounds:      100,
			Seed:        1,
			BaseWager:   1,
			Parallelism: 4,
			LogLevel:    "warn",
		},
		Players: []PlayerConfig{
			{Name: "alice", Handicap: 4, Personality: string(bot.Aggressive)},
			{Name: "bob", Handicap: 11, Personality: string(bot.Conservative)},
			{Name: "carol", Handicap: 17, Personality: string(bot.Random)},
			{Name: "dave", Handicap: 22, Personality: string(bot.Conservative)},
		},
	}
}

// LoadConfig loads simulation configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Simulation.Rounds == 0 {
		config.Simulation.Rounds = 100
	}
	if config.Simulation.Seed == 0 {
		config.Simulation.Seed = 1
	}
	if config.Simulation.BaseWager == 0 {
		config.Simulation.BaseWager = 1
	}
	if config.Simulation.Parallelism == 0 {
		config.Simulation.Parallelism = 4
	}
	if config.Simulation.LogLevel == "" {
		config.Simulation.LogLevel = "warn"
	}
	if len(config.Players) == 0 {
		config.Players = DefaultConfig().Players
	}
	for i := range config.Players {
		if config.Players[i].Personality == "" {
			config.Players[i].Personality = string(bot.Conservative)
		}
	}
}

// Validate rejects configurations the engine cannot play.
func (c *Config) Validate() error {
	if n := len(c.Players); n < 4 || n > 6 {
		return fmt.Errorf("simulation needs 4-6 players, got %d", n)
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player block needs a name label")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
		if !funk.Contains(bot.Personalities(), bot.Personality(p.Personality)) {
			return fmt.Errorf("player %q has unknown personality %q", p.Name, p.Personality)
		}
	}
	if c.Simulation.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Simulation.Rounds)
	}
	return nil
}
