package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/lox/fairplay/cmd/fairplay/shared"
	"github.com/lox/fairplay/internal/console"
	"github.com/lox/fairplay/internal/display"
)

type PlayCmd struct {
	Moves    []string       `arg:"" optional:"" help:"Moves in cyclic order; odd count, at least 3 (defaults to the config file)"`
	Rounds   *int           `help:"Rounds to play, 0 plays until you exit (default from config: 1)"`
	Timeout  *time.Duration `help:"Abandon a round if no move arrives in this time, 0 waits forever"`
	AuditLog string         `env:"FAIRPLAY_AUDIT_LOG" help:"Append a JSON audit trail of every round to this file"`
	Plain    bool           `help:"Read moves line by line without terminal line editing"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	set, err := resolveMoves(c.Moves, cfg)
	if err != nil {
		return err
	}

	rounds := cfg.Rounds()
	if c.Rounds != nil {
		rounds = *c.Rounds
	}
	if rounds < 0 {
		return fmt.Errorf("rounds cannot be negative")
	}
	timeout := cfg.Timeout()
	if c.Timeout != nil {
		timeout = *c.Timeout
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

	auditPath := cfg.Audit.File
	if c.AuditLog != "" {
		auditPath = c.AuditLog
	}
	recorder, err := shared.SetupAudit(auditPath)
	if err != nil {
		return err
	}
	defer recorder.Close()

	var (
		reader console.LineReader
		out    io.Writer = os.Stdout
	)
	if c.Plain || !isatty.IsTerminal(os.Stdin.Fd()) {
		reader = console.NewLineReader(os.Stdin)
	} else {
		rl, err := console.NewTerminalReader()
		if err != nil {
			return fmt.Errorf("failed to initialise terminal: %w", err)
		}
		defer rl.Close()
		// Writes through readline redraw its prompt instead of clobbering it.
		reader, out = rl, rl.Stdout()
	}

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	printer := display.New(os.Stdout)
	fmt.Println(printer.Title(" fairplay "))
	fmt.Println()

	logger.Info("Starting game", "moves", set.Len(), "rounds", rounds, "timeout", timeout)
	summary, err := console.New(console.Config{
		Moves:   set,
		Rounds:  rounds,
		Timeout: timeout,
		Reader:  reader,
		Out:     out,
		Printer: printer,
		Logger:  logger,
		Audit:   recorder,
	}).Run(ctx)

	if rounds != 1 && summary.Played > 0 {
		fmt.Println(printer.Info(fmt.Sprintf("Played %d: %d won, %d lost, %d drawn",
			summary.Played, summary.Wins, summary.Losses, summary.Draws)))
	}

	if errors.Is(err, console.ErrAborted) {
		fmt.Println(printer.Info("Game aborted; the computer's key was discarded."))
		return nil
	}
	return err
}
