// Package console runs games against the automated opponent on a line-based
// terminal: it publishes the commitment, shows the move menu, reads the
// human's choice and prints the reveal.
//
// The exit and help tokens, invalid input and input timeouts are handled
// here; the game package only ever sees a move index. Whenever a round ends
// without a valid move (exit, EOF, interrupt, timeout, cancellation) the
// session is aborted and its key is never printed.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/coder/quartz"

	"github.com/lox/fairplay/internal/audit"
	"github.com/lox/fairplay/internal/display"
	"github.com/lox/fairplay/internal/game"
	"github.com/lox/fairplay/internal/moves"
	"github.com/lox/fairplay/internal/rules"
)

var (
	// ErrAborted is returned when the human interrupts a round.
	ErrAborted = errors.New("game aborted")
	// ErrInputTimeout is returned when no move arrives in time.
	ErrInputTimeout = errors.New("timed out waiting for a move")
)

// Abort reasons recorded in logs and the audit trail.
const (
	reasonExit        = "exit"
	reasonEOF         = "eof"
	reasonInterrupted = "interrupted"
	reasonTimeout     = "timeout"
	reasonCancelled   = "cancelled"
)

// Config configures a console Game.
type Config struct {
	Moves   moves.Set
	Rounds  int           // 0 plays until the human exits
	Timeout time.Duration // 0 waits forever

	Reader  LineReader
	Out     io.Writer
	Printer *display.Printer
	Clock   quartz.Clock
	Logger  *log.Logger
	Audit   *audit.Recorder
	Random  io.Reader
}

// Summary tallies the rounds a Game played.
type Summary struct {
	Played int
	Wins   int
	Losses int
	Draws  int
}

func (s *Summary) add(o rules.Outcome) {
	s.Played++
	switch o {
	case rules.ChallengerWins:
		s.Wins++
	case rules.DefenderWins:
		s.Losses++
	default:
		s.Draws++
	}
}

// Game plays rounds on a console.
type Game struct {
	cfg    Config
	logger *log.Logger

	lines    chan lineResult
	requests chan struct{}
	done     chan struct{}
	pending  bool // a requested line has not been received yet
}

type lineResult struct {
	line string
	err  error
}

// New creates a Game. Out, Printer, Clock and Logger get defaults when nil.
func New(cfg Config) *Game {
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Printer == nil {
		cfg.Printer = display.New(cfg.Out)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Game{
		cfg:    cfg,
		logger: cfg.Logger.WithPrefix("console"),
	}
}

// Run plays rounds until the configured count is reached or the human exits.
// Exiting via the menu or EOF returns a nil error.
func (g *Game) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	g.lines = make(chan lineResult)
	g.requests = make(chan struct{})
	g.done = make(chan struct{})
	g.pending = false
	defer close(g.done)
	go g.pump()

	for g.cfg.Rounds == 0 || summary.Played < g.cfg.Rounds {
		res, err := g.playRound(ctx)
		if err != nil {
			if errors.Is(err, errExit) {
				return summary, nil
			}
			return summary, err
		}
		summary.add(res.Outcome)
	}
	return summary, nil
}

var errExit = errors.New("exit requested")

func (g *Game) playRound(ctx context.Context) (game.Result, error) {
	session, err := game.NewSession(g.cfg.Moves,
		game.WithRandom(g.cfg.Random),
		game.WithLogger(g.cfg.Logger),
		game.WithAudit(g.cfg.Audit),
	)
	if err != nil {
		return game.Result{}, err
	}

	p := g.cfg.Printer
	g.println(p.Commitment(session.Commitment()))
	g.println(p.Menu(session.Moves()))

	for {
		line, err := g.readLine(ctx)
		if err != nil {
			return game.Result{}, g.abort(session, err)
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case display.HelpToken:
			g.println(p.Table(session.Moves()))
			g.println(p.Menu(session.Moves()))
			continue
		case display.ExitToken:
			session.Abort(reasonExit)
			g.println("Exiting game.")
			return game.Result{}, errExit
		}

		choice, err := strconv.Atoi(input)
		if err != nil {
			g.logger.Debug("Unparseable input", "input", input)
			g.println(p.Error("Invalid choice, try again."))
			continue
		}

		res, err := session.Reveal(choice - 1)
		if errors.Is(err, game.ErrInvalidMoveIndex) {
			g.println(p.Error("Invalid choice, try again."))
			continue
		}
		if err != nil {
			return game.Result{}, err
		}

		g.println(p.Result(res))
		return res, nil
	}
}

// abort discards the session's key and maps a read failure to the error
// Run returns.
func (g *Game) abort(session *game.Session, err error) error {
	switch {
	case errors.Is(err, io.EOF):
		session.Abort(reasonEOF)
		g.println("Exiting game.")
		return errExit
	case errors.Is(err, ErrInputTimeout):
		session.Abort(reasonTimeout)
		g.println(g.cfg.Printer.Error(fmt.Sprintf("No move received within %s; the round was abandoned.", g.cfg.Timeout)))
		return err
	case errors.Is(err, readline.ErrInterrupt):
		session.Abort(reasonInterrupted)
		return fmt.Errorf("%w: interrupted", ErrAborted)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		session.Abort(reasonCancelled)
		return fmt.Errorf("%w: %v", ErrAborted, err)
	default:
		session.Abort(err.Error())
		return fmt.Errorf("failed to read move: %w", err)
	}
}

// pump reads lines on its own goroutine so that a blocked read can be
// abandoned on timeout or cancellation without losing the next line. It only
// reads after readLine asks, so a terminal prompt is never drawn before the
// round's commitment and menu are printed.
func (g *Game) pump() {
	for {
		select {
		case <-g.requests:
		case <-g.done:
			return
		}
		line, err := g.cfg.Reader.Readline()
		select {
		case g.lines <- lineResult{line: line, err: err}:
		case <-g.done:
			return
		}
		if err != nil && !errors.Is(err, readline.ErrInterrupt) {
			return
		}
	}
}

func (g *Game) readLine(ctx context.Context) (string, error) {
	prompt := g.cfg.Printer.Prompt()
	if pr, ok := g.cfg.Reader.(prompter); ok {
		pr.SetPrompt(prompt)
	} else {
		fmt.Fprint(g.cfg.Out, prompt)
	}

	var expired chan struct{}
	if g.cfg.Timeout > 0 {
		expired = make(chan struct{})
		timer := g.cfg.Clock.AfterFunc(g.cfg.Timeout, func() {
			close(expired)
		}, "console", "input")
		defer timer.Stop()
	}

	if !g.pending {
		select {
		case g.requests <- struct{}{}:
			g.pending = true
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	select {
	case res := <-g.lines:
		g.pending = false
		return res.line, res.err
	case <-expired:
		g.logger.Warn("Input timeout", "timeout", g.cfg.Timeout)
		return "", ErrInputTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *Game) println(s string) {
	fmt.Fprintln(g.cfg.Out, s)
}
