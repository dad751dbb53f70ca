// Package rules decides the winner between two moves of an odd-sized,
// cyclically ordered catalog.
//
// With n moves and half = (n-1)/2, a challenger at index a beats a defender
// at index b when the forward distance d = (a-b) mod n lies in [1, half].
// Each move therefore beats the half moves before it in the catalog and
// loses to the half moves after it, wrapping around. For n = 3 this is
// rock-paper-scissors under the order [rock, paper, scissors].
package rules

import "fmt"

// Outcome is the result of one pairing, seen from the challenger.
type Outcome int

const (
	Draw Outcome = iota
	ChallengerWins
	DefenderWins
)

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "Draw"
	case ChallengerWins:
		return "ChallengerWins"
	case DefenderWins:
		return "DefenderWins"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Invert returns the outcome from the other side of the pairing.
func (o Outcome) Invert() Outcome {
	switch o {
	case ChallengerWins:
		return DefenderWins
	case DefenderWins:
		return ChallengerWins
	default:
		return o
	}
}

// Half returns how many moves each move beats in a catalog of size n.
func Half(n int) int {
	return (n - 1) / 2
}

// Resolve decides challenger against defender. It panics on an even or
// too-small n or on indices outside [0, n); catalogs are validated before
// a game starts, so either is a programming error.
func Resolve(challenger, defender, n int) Outcome {
	checkSize(n)
	checkIndex(challenger, n)
	checkIndex(defender, n)

	if challenger == defender {
		return Draw
	}
	d := ((challenger-defender)%n + n) % n
	if d <= Half(n) {
		return ChallengerWins
	}
	return DefenderWins
}

// Beats reports whether a beats b.
func Beats(a, b, n int) bool {
	return Resolve(a, b, n) == ChallengerWins
}

// Matrix returns every pairing as an n×n grid. Rows are defenders and
// columns are challengers, so m[row][col] == Resolve(col, row, n).
func Matrix(n int) [][]Outcome {
	checkSize(n)
	m := make([][]Outcome, n)
	for row := range m {
		m[row] = make([]Outcome, n)
		for col := range m[row] {
			m[row][col] = Resolve(col, row, n)
		}
	}
	return m
}

func checkSize(n int) {
	if n < 3 || n%2 == 0 {
		panic(fmt.Sprintf("rules: catalog size must be odd and at least 3, got %d", n))
	}
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("rules: move index %d out of range [0, %d)", i, n))
	}
}
