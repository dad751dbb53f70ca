package main

import (
	"fmt"
	"os"

	"github.com/lox/fairplay/internal/display"
)

type TableCmd struct {
	Moves []string `arg:"" optional:"" help:"Moves in cyclic order (defaults to the config file)"`
}

func (c *TableCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	set, err := resolveMoves(c.Moves, cfg)
	if err != nil {
		return err
	}

	fmt.Println(display.New(os.Stdout).Table(set))
	return nil
}
