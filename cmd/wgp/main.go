package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-vs-bot round simulations"`
	Demo     DemoCmd          `cmd:"" help:"Play a single round and print it hole by hole"`
	Replay   ReplayCmd        `cmd:"" help:"Inspect an archived round record"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("wgp"),
		kong.Description("Wolf Goat Pig betting engine and simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
