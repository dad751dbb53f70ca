package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/fairplay/internal/game"
	"github.com/lox/fairplay/internal/moves"
	"github.com/lox/fairplay/internal/randutil"
	"github.com/lox/fairplay/internal/rules"
)

// Config holds configuration for running simulations
type Config struct {
	Moves   moves.Set
	Games   int
	Workers int // defaults to GOMAXPROCS
	Logger  *log.Logger
}

// Simulator plays many independent sessions with a random human and checks
// that every reveal matches its commitment.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

type workerResult struct {
	tally
	err error
}

// Run executes the simulation and returns the tallies with a goodness-of-fit
// test of the opponent's move distribution.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	n := s.config.Moves.Len()
	workers := min(s.config.Workers, s.config.Games)
	perWorker := s.config.Games / workers
	remainder := s.config.Games % workers

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation", "games", s.config.Games, "workers", workers, "moves", n)

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan tally, workers)

	for w := 0; w < workers; w++ {
		games := perWorker
		if w < remainder {
			games++
		}

		g.Go(func() error {
			t, err := s.runWorker(ctx, games)
			if err != nil {
				return err
			}
			select {
			case results <- t:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		_ = g.Wait()
	}()

	total := newTally(n)
	for t := range results {
		total.merge(t)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := newReport(s.config.Moves, total)
	logger.Info("Simulation complete",
		"games", report.Games,
		"chi2", report.ChiSquare,
		"p", report.PValue)
	return report, nil
}

func (s *Simulator) runWorker(ctx context.Context, games int) (tally, error) {
	n := s.config.Moves.Len()
	t := newTally(n)

	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return t, err
		}

		session, err := game.NewSession(s.config.Moves)
		if err != nil {
			return t, err
		}
		human, err := randutil.Index(nil, n)
		if err != nil {
			return t, err
		}
		res, err := session.Reveal(human)
		if err != nil {
			return t, err
		}
		if !res.Verify() {
			return t, fmt.Errorf("commitment mismatch in session %s", res.SessionID)
		}

		t.record(res)
	}
	return t, nil
}

type tally struct {
	secret []int
	human  []int
	wins   int
	losses int
	draws  int
}

func newTally(n int) tally {
	return tally{secret: make([]int, n), human: make([]int, n)}
}

func (t *tally) record(res game.Result) {
	t.secret[res.OpponentIndex]++
	t.human[res.HumanIndex]++
	switch res.Outcome {
	case rules.ChallengerWins:
		t.wins++
	case rules.DefenderWins:
		t.losses++
	default:
		t.draws++
	}
}

func (t *tally) merge(o tally) {
	for i := range t.secret {
		t.secret[i] += o.secret[i]
		t.human[i] += o.human[i]
	}
	t.wins += o.wins
	t.losses += o.losses
	t.draws += o.draws
}
