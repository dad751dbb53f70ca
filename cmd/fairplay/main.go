package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config  string `short:"c" default:"fairplay.hcl" env:"FAIRPLAY_CONFIG" help:"Path to the HCL config file"`
	Debug   bool   `env:"FAIRPLAY_DEBUG" help:"Enable debug logging"`
	LogFile string `env:"FAIRPLAY_LOG_FILE" help:"Write diagnostics to this file instead of stderr"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play against the computer (default)"`
	Table    TableCmd         `cmd:"" help:"Print the win/lose table for a set of moves"`
	Verify   VerifyCmd        `cmd:"" help:"Check a revealed key and move against a published HMAC"`
	Simulate SimulateCmd      `cmd:"" help:"Play many automated games and test the computer's fairness"`
	Init     InitCmd          `cmd:"" help:"Write a default config file"`
}

func main() {
	// A missing .env is fine; it only supplies FAIRPLAY_* defaults.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fairplay"),
		kong.Description("Generalised rock-paper-scissors against a computer that commits to its move with HMAC-SHA256"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
