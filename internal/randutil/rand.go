// Package randutil centralises how the game draws randomness. Every draw
// comes from a cryptographically secure source; callers may inject their own
// io.Reader for tests, but nothing here ever falls back to math/rand.
package randutil

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrEntropy reports that the random source could not deliver the bytes
// requested. It is fatal for whatever operation needed the randomness.
var ErrEntropy = errors.New("secure random source unavailable")

// Source returns r, or crypto/rand.Reader when r is nil.
func Source(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader
	}
	return r
}

// Bytes fills a fresh slice of length n from r.
func Bytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(Source(r), buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return buf, nil
}

// Index returns an integer uniformly distributed over [0, n). Draws that
// fall in the incomplete top bucket of the uint64 range are rejected, so
// there is no modulo bias.
func Index(r io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("randutil: invalid bound %d", n)
	}
	bound := uint64(n)
	limit := math.MaxUint64 - math.MaxUint64%bound

	var buf [8]byte
	for {
		if _, err := io.ReadFull(Source(r), buf[:]); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrEntropy, err)
		}
		if v := binary.BigEndian.Uint64(buf[:]); v < limit {
			return int(v % bound), nil
		}
	}
}
