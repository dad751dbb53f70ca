package simulator

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lox/fairplay/internal/moves"
)

// Report summarises a simulation run.
type Report struct {
	Moves        []string
	Games        int
	SecretCounts []int // how often the opponent picked each move
	HumanCounts  []int
	Wins         int // human wins
	Losses       int
	Draws        int

	ChiSquare        float64
	DegreesOfFreedom int
	PValue           float64
}

func newReport(set moves.Set, t tally) *Report {
	r := &Report{
		Moves:        set.Names(),
		SecretCounts: t.secret,
		HumanCounts:  t.human,
		Wins:         t.wins,
		Losses:       t.losses,
		Draws:        t.draws,
	}
	r.Games = r.Wins + r.Losses + r.Draws
	r.ChiSquare, r.PValue = goodnessOfFit(t.secret)
	r.DegreesOfFreedom = len(t.secret) - 1
	return r
}

// goodnessOfFit tests observed counts against a uniform distribution and
// returns Pearson's statistic with its p-value.
func goodnessOfFit(counts []int) (chi2, p float64) {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 || len(counts) < 2 {
		return 0, 1
	}

	observed := make([]float64, len(counts))
	expected := make([]float64, len(counts))
	for i, c := range counts {
		observed[i] = float64(c)
		expected[i] = float64(total) / float64(len(counts))
	}

	chi2 = stat.ChiSquare(observed, expected)
	dist := distuv.ChiSquared{K: float64(len(counts) - 1)}
	return chi2, dist.Survival(chi2)
}

// Uniform reports whether uniformity is not rejected at significance alpha.
func (r *Report) Uniform(alpha float64) bool {
	return r.PValue >= alpha
}

// String renders the report as plain text.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Games: %d\n", r.Games)
	fmt.Fprintf(&b, "Human wins: %d  Computer wins: %d  Draws: %d\n", r.Wins, r.Losses, r.Draws)
	b.WriteString("Computer move distribution:\n")
	for i, name := range r.Moves {
		share := 0.0
		if r.Games > 0 {
			share = 100 * float64(r.SecretCounts[i]) / float64(r.Games)
		}
		fmt.Fprintf(&b, "  %-12s %8d  %5.2f%%\n", name, r.SecretCounts[i], share)
	}
	fmt.Fprintf(&b, "Chi-square: %.3f (df=%d, p=%.4f)", r.ChiSquare, r.DegreesOfFreedom, r.PValue)
	return b.String()
}
