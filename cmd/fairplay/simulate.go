package main

import (
	"fmt"

	"github.com/lox/fairplay/cmd/fairplay/shared"
	"github.com/lox/fairplay/internal/simulator"
)

type SimulateCmd struct {
	Moves   []string `arg:"" optional:"" help:"Moves in cyclic order (defaults to the config file)"`
	Games   int      `default:"10000" help:"Number of games to play"`
	Workers int      `default:"0" help:"Parallel workers (0 uses every CPU)"`
	Alpha   float64  `default:"0.001" help:"Significance level for the uniformity test"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	set, err := resolveMoves(c.Moves, cfg)
	if err != nil {
		return err
	}

	logFile := cfg.Log.File
	if g.LogFile != "" {
		logFile = g.LogFile
	}
	logger, closeLog, err := shared.SetupLogger(cfg.Log.Level, logFile, g.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	report, err := simulator.New(simulator.Config{
		Moves:   set,
		Games:   c.Games,
		Workers: c.Workers,
		Logger:  logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(report)
	if !report.Uniform(c.Alpha) {
		return fmt.Errorf("computer move distribution deviates from uniform (p=%.4g < %g)", report.PValue, c.Alpha)
	}
	return nil
}
