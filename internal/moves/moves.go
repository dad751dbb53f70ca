// Package moves holds the move catalog a game is played with.
//
// A catalog is an ordered list of distinct names. Its length must be odd and
// at least three; the order defines each move's cyclic position, which is what
// the rules package uses to decide a winner.
package moves

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/lox/fairplay/internal/randutil"
)

// MinMoves is the smallest catalog that still has a winner for every pair.
const MinMoves = 3

var (
	ErrOddCountRequired = errors.New("number of moves must be odd")
	ErrTooFewMoves      = fmt.Errorf("at least %d moves are required", MinMoves)
	ErrDuplicateMove    = errors.New("moves must be unique")
)

// Validate checks a raw catalog. Parity is checked before size, so an empty
// or two-element list reports ErrOddCountRequired and only a single move
// reports ErrTooFewMoves.
func Validate(names []string) error {
	if len(names)%2 == 0 {
		return fmt.Errorf("%w: got %d", ErrOddCountRequired, len(names))
	}
	if len(names) < MinMoves {
		return fmt.Errorf("%w: got %d", ErrTooFewMoves, len(names))
	}

	seen := make(map[string]int, len(names))
	for i, name := range names {
		if first, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q appears at positions %d and %d", ErrDuplicateMove, name, first+1, i+1)
		}
		seen[name] = i
	}
	return nil
}

// Set is a validated, immutable move catalog.
type Set struct {
	names []string
}

// New validates names and returns a Set owning a private copy of them.
func New(names []string) (Set, error) {
	if err := Validate(names); err != nil {
		return Set{}, err
	}
	return Set{names: slices.Clone(names)}, nil
}

// MustNew is New for fixed catalogs known to be valid.
func MustNew(names ...string) Set {
	s, err := New(names)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of moves.
func (s Set) Len() int {
	return len(s.names)
}

// Half is the number of moves each move beats (and loses to).
func (s Set) Half() int {
	return (len(s.names) - 1) / 2
}

// Name returns the move at index i.
func (s Set) Name(i int) string {
	return s.names[i]
}

// Names returns a copy of the catalog in order.
func (s Set) Names() []string {
	return slices.Clone(s.names)
}

// Index returns the position of name, or -1.
func (s Set) Index(name string) int {
	return slices.Index(s.names, name)
}

// Contains reports whether i is a valid move index.
func (s Set) Contains(i int) bool {
	return i >= 0 && i < len(s.names)
}

// Valid reports whether the Set went through New. The zero Set is not valid.
func (s Set) Valid() bool {
	return Validate(s.names) == nil
}

// Select picks a move index uniformly at random using the secure source r
// (crypto/rand when r is nil).
func Select(r io.Reader, s Set) (int, error) {
	idx, err := randutil.Index(r, s.Len())
	if err != nil {
		return 0, fmt.Errorf("select move: %w", err)
	}
	return idx, nil
}
