// Package commitment implements the commit-reveal primitive the automated
// opponent uses to bind itself to a move before the human chooses.
//
// A commitment is HMAC-SHA256(key, move). The key is 256 bits from a secure
// random source and is only disclosed once the human has picked a move; the
// human then recomputes the digest to check that the move was not changed.
//
// The HMAC is keyed with the hex text of the key, the same 64 characters the
// human is shown, so any HMAC-SHA256 tool reproduces the digest from the
// disclosed values without decoding anything.
package commitment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/lox/fairplay/internal/randutil"
)

const (
	// KeySize is the key length in bytes.
	KeySize = 32
	// HexLen is the length of a hex-encoded key or commitment.
	HexLen = 2 * sha256.Size
)

// ErrEntropy is returned when the key cannot be generated.
var ErrEntropy = randutil.ErrEntropy

// Key is a single-use HMAC key.
type Key [KeySize]byte

// Commitment is an HMAC-SHA256 digest.
type Commitment [sha256.Size]byte

// GenerateKey reads a fresh key from r (crypto/rand when r is nil).
func GenerateKey(r io.Reader) (Key, error) {
	var k Key
	b, err := randutil.Bytes(r, KeySize)
	if err != nil {
		return k, fmt.Errorf("generate key: %w", err)
	}
	copy(k[:], b)
	clear(b)
	return k, nil
}

// NewKey returns a key from crypto/rand.
func NewKey() (Key, error) {
	return GenerateKey(nil)
}

// String returns the key as 64 lowercase hex characters.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// IsZero reports whether k is the zero key, which is what a discarded key
// is reset to.
func (k Key) IsZero() bool {
	return k == Key{}
}

// String returns the digest as 64 lowercase hex characters.
func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}

// Commit returns HMAC-SHA256 of move keyed by k.
func Commit(k Key, move string) Commitment {
	var c Commitment
	mac := hmac.New(sha256.New, []byte(k.String()))
	mac.Write([]byte(move))
	copy(c[:], mac.Sum(nil))
	return c
}

// Verify recomputes the commitment for (k, move) and compares it to c in
// constant time.
func Verify(k Key, move string, c Commitment) bool {
	got := Commit(k, move)
	return hmac.Equal(got[:], c[:])
}

// ParseKey decodes a hex-encoded key.
func ParseKey(s string) (Key, error) {
	var k Key
	if err := decodeHex(s, k[:]); err != nil {
		return k, fmt.Errorf("invalid key: %w", err)
	}
	return k, nil
}

// ParseCommitment decodes a hex-encoded commitment.
func ParseCommitment(s string) (Commitment, error) {
	var c Commitment
	if err := decodeHex(s, c[:]); err != nil {
		return c, fmt.Errorf("invalid commitment: %w", err)
	}
	return c, nil
}

func decodeHex(s string, dst []byte) error {
	if len(s) != 2*len(dst) {
		return fmt.Errorf("expected %d hex characters, got %d", 2*len(dst), len(s))
	}
	_, err := hex.Decode(dst, []byte(s))
	return err
}
