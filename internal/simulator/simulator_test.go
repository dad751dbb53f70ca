package simulator

import (
	"context"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/fairplay/internal/moves"
)

func TestNew(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	config := Config{
		Moves:  moves.MustNew("rock", "paper", "scissors"),
		Games:  100,
		Logger: logger,
	}

	simulator := New(config)
	if simulator == nil {
		t.Fatal("New() returned nil")
	}
	if simulator.config.Games != 100 {
		t.Errorf("Expected 100 games, got %d", simulator.config.Games)
	}
	if simulator.config.Workers <= 0 {
		t.Errorf("Expected workers to default to a positive value, got %d", simulator.config.Workers)
	}
}

func TestSimulator_Run(t *testing.T) {
	set := moves.MustNew("rock", "paper", "scissors", "lizard", "spock")
	simulator := New(Config{Moves: set, Games: 5000, Workers: 4})

	report, err := simulator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Games != 5000 {
		t.Errorf("Expected 5000 games, got %d", report.Games)
	}

	secretTotal, humanTotal := 0, 0
	for i := range report.SecretCounts {
		secretTotal += report.SecretCounts[i]
		humanTotal += report.HumanCounts[i]
	}
	if secretTotal != 5000 || humanTotal != 5000 {
		t.Errorf("Counts do not add up: secret=%d human=%d", secretTotal, humanTotal)
	}

	if report.DegreesOfFreedom != 4 {
		t.Errorf("Expected 4 degrees of freedom, got %d", report.DegreesOfFreedom)
	}

	// A fair selector fails this only with probability 1e-4.
	if !report.Uniform(1e-4) {
		t.Errorf("Computer move distribution looks biased: %v (p=%f)", report.SecretCounts, report.PValue)
	}

	// Against a uniform opponent, wins and losses are each about 40% and
	// draws about 20% for five moves.
	drawShare := float64(report.Draws) / float64(report.Games)
	if math.Abs(drawShare-0.2) > 0.05 {
		t.Errorf("Draw share %.3f far from expected 0.2", drawShare)
	}
}

func TestSimulator_MoreWorkersThanGames(t *testing.T) {
	simulator := New(Config{Moves: moves.MustNew("a", "b", "c"), Games: 3, Workers: 16})

	report, err := simulator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Games != 3 {
		t.Errorf("Expected 3 games, got %d", report.Games)
	}
}

func TestSimulator_InvalidGames(t *testing.T) {
	simulator := New(Config{Moves: moves.MustNew("a", "b", "c"), Games: 0})
	if _, err := simulator.Run(context.Background()); err == nil {
		t.Error("Expected error for zero games")
	}
}

func TestSimulator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	simulator := New(Config{Moves: moves.MustNew("a", "b", "c"), Games: 1000, Workers: 2})
	if _, err := simulator.Run(ctx); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestGoodnessOfFit(t *testing.T) {
	chi2, p := goodnessOfFit([]int{100, 100, 100})
	if chi2 != 0 {
		t.Errorf("Expected chi2 of 0 for a perfect fit, got %f", chi2)
	}
	if math.Abs(p-1) > 1e-9 {
		t.Errorf("Expected p of 1 for a perfect fit, got %f", p)
	}

	// (150-100)^2/100 + (50-100)^2/100 + 0 = 50
	chi2, p = goodnessOfFit([]int{150, 50, 100})
	if math.Abs(chi2-50) > 1e-9 {
		t.Errorf("Expected chi2 of 50, got %f", chi2)
	}
	if p > 1e-6 {
		t.Errorf("Expected a tiny p-value for a skewed histogram, got %g", p)
	}

	chi2, p = goodnessOfFit([]int{0, 0, 0})
	if chi2 != 0 || p != 1 {
		t.Errorf("Expected (0, 1) for an empty histogram, got (%f, %f)", chi2, p)
	}
}

func TestReportString(t *testing.T) {
	r := &Report{
		Moves:            []string{"rock", "paper", "scissors"},
		Games:            3,
		SecretCounts:     []int{1, 1, 1},
		HumanCounts:      []int{1, 1, 1},
		Wins:             1,
		Losses:           1,
		Draws:            1,
		DegreesOfFreedom: 2,
		PValue:           1,
	}
	out := r.String()
	for _, want := range []string{"Games: 3", "rock", "scissors", "df=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected report to contain %q:\n%s", want, out)
		}
	}
}
