// Package audit writes a JSON-lines trail of every game: the commitment when
// it is published, and either the reveal (with the key) or the abort (without
// it). Players can replay the trail later to re-check each commitment.
package audit

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/lox/fairplay/internal/commitment"
	"github.com/lox/fairplay/internal/rules"
)

// Event names written in the "event" field.
const (
	EventCommitted = "committed"
	EventRevealed  = "revealed"
	EventAborted   = "aborted"
)

// Recorder writes audit events. A nil *Recorder discards everything.
type Recorder struct {
	logger zerolog.Logger
	closer io.Closer
}

// New returns a Recorder writing JSON lines to w.
func New(w io.Writer) *Recorder {
	return &Recorder{
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// Open appends to the file at path, creating it if needed.
func Open(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	r := New(f)
	r.closer = f
	return r, nil
}

// Close closes the underlying file, if Open created one.
func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Committed records a published commitment.
func (r *Recorder) Committed(sessionID string, moves []string, c commitment.Commitment) {
	if r == nil {
		return
	}
	r.logger.Info().
		Str("event", EventCommitted).
		Str("session", sessionID).
		Strs("moves", moves).
		Str("hmac", c.String()).
		Send()
}

// Reveal carries the fields of a completed game.
type Reveal struct {
	SessionID    string
	HumanMove    string
	OpponentMove string
	Outcome      rules.Outcome
	Key          commitment.Key
	Commitment   commitment.Commitment
}

// Revealed records an opened commitment together with its key.
func (r *Recorder) Revealed(rv Reveal) {
	if r == nil {
		return
	}
	r.logger.Info().
		Str("event", EventRevealed).
		Str("session", rv.SessionID).
		Str("human_move", rv.HumanMove).
		Str("computer_move", rv.OpponentMove).
		Stringer("outcome", rv.Outcome).
		Str("hmac", rv.Commitment.String()).
		Str("key", rv.Key.String()).
		Send()
}

// Aborted records a game that ended before the reveal. The key is never
// part of this event.
func (r *Recorder) Aborted(sessionID, reason string) {
	if r == nil {
		return
	}
	r.logger.Warn().
		Str("event", EventAborted).
		Str("session", sessionID).
		Str("reason", reason).
		Send()
}
