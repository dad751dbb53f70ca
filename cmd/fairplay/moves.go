package main

import (
	"fmt"

	"github.com/lox/fairplay/internal/config"
	"github.com/lox/fairplay/internal/moves"
)

const usageExample = "example: fairplay rock paper scissors"

func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", g.Config, err)
	}
	return cfg, nil
}

// resolveMoves prefers moves given on the command line over the config file.
func resolveMoves(args []string, cfg *config.Config) (moves.Set, error) {
	names := args
	if len(names) == 0 {
		names = cfg.Game.Moves
	}
	set, err := moves.New(names)
	if err != nil {
		return moves.Set{}, fmt.Errorf("%w\n%s", err, usageExample)
	}
	return set, nil
}
