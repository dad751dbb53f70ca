package main

import (
	"fmt"

	"github.com/lox/fairplay/internal/config"
	"github.com/lox/fairplay/internal/fileutil"
)

type InitCmd struct {
	Moves []string `arg:"" optional:"" help:"Moves to store in the config (default rock paper scissors)"`
	Force bool     `help:"Overwrite an existing config file"`
}

func (c *InitCmd) Run(g *Globals) error {
	cfg := config.DefaultConfig()
	if len(c.Moves) > 0 {
		cfg.Game.Moves = c.Moves
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w\n%s", err, usageExample)
	}

	if err := fileutil.Write(g.Config, cfg.Encode(), 0o644, c.Force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", g.Config)
	return nil
}
