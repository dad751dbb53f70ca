package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/fairplay/internal/audit"
	"github.com/lox/fairplay/internal/commitment"
	"github.com/lox/fairplay/internal/moves"
	"github.com/lox/fairplay/internal/rules"
)

var (
	// ErrInvalidMoveIndex is returned by Reveal for an index outside the
	// catalog. The session stays committed and the call may be retried.
	ErrInvalidMoveIndex = errors.New("invalid move index")
	// ErrSessionClosed is returned by Reveal once the session was revealed
	// or aborted.
	ErrSessionClosed = errors.New("session is closed")
)

// State is a session's position in its lifecycle.
type State int

const (
	Created State = iota
	Committed
	Revealed
	Aborted
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Committed:
		return "committed"
	case Revealed:
		return "revealed"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is a single game against the automated opponent. It is not safe
// for concurrent use; one interaction owns one session.
type Session struct {
	id         string
	moves      moves.Set
	key        commitment.Key
	secret     int
	commitment commitment.Commitment
	state      State

	random io.Reader
	logger *log.Logger
	audit  *audit.Recorder
}

// Option configures a Session.
type Option func(*Session)

// WithRandom replaces crypto/rand as the source for the key and the move.
// Only tests should need this.
func WithRandom(r io.Reader) Option {
	return func(s *Session) { s.random = r }
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithAudit records the session's commitment and its reveal or abort.
func WithAudit(r *audit.Recorder) Option {
	return func(s *Session) { s.audit = r }
}

// NewSession picks the opponent's move, generates a fresh key and commits
// to the move. The returned session is Committed. Any failure, including an
// unavailable random source, is fatal and no session is returned.
func NewSession(set moves.Set, opts ...Option) (*Session, error) {
	s := &Session{
		id:     newSessionID(),
		moves:  set,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("session").With("id", s.id)

	if err := moves.Validate(set.Names()); err != nil {
		return nil, fmt.Errorf("invalid move set: %w", err)
	}

	secret, err := moves.Select(s.random, set)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	key, err := commitment.GenerateKey(s.random)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.secret = secret
	s.key = key
	s.commitment = commitment.Commit(key, set.Name(secret))
	s.state = Committed

	s.logger.Debug("Committed to move", "moves", set.Len(), "hmac", s.commitment)
	s.audit.Committed(s.id, set.Names(), s.commitment)
	return s, nil
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ID identifies the session in logs and the audit trail.
func (s *Session) ID() string { return s.id }

// Moves returns the catalog the session was created with.
func (s *Session) Moves() moves.Set { return s.moves }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Commitment returns the published commitment. It is safe to show at any
// time; the key stays hidden until Reveal.
func (s *Session) Commitment() commitment.Commitment { return s.commitment }

// Reveal plays the human's move against the committed one and discloses the
// key. The human is the challenger and the opponent the defender.
func (s *Session) Reveal(humanIndex int) (Result, error) {
	if s.state != Committed {
		return Result{}, fmt.Errorf("%w: %s", ErrSessionClosed, s.state)
	}
	if !s.moves.Contains(humanIndex) {
		s.logger.Debug("Rejected move index", "index", humanIndex)
		return Result{}, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidMoveIndex, humanIndex, s.moves.Len())
	}

	res := Result{
		SessionID:     s.id,
		HumanIndex:    humanIndex,
		HumanMove:     s.moves.Name(humanIndex),
		OpponentIndex: s.secret,
		OpponentMove:  s.moves.Name(s.secret),
		Outcome:       rules.Resolve(humanIndex, s.secret, s.moves.Len()),
		Key:           s.key,
		Commitment:    s.commitment,
	}
	s.state = Revealed

	s.logger.Info("Revealed", "human", res.HumanMove, "computer", res.OpponentMove, "outcome", res.Outcome)
	s.audit.Revealed(audit.Reveal{
		SessionID:    s.id,
		HumanMove:    res.HumanMove,
		OpponentMove: res.OpponentMove,
		Outcome:      res.Outcome,
		Key:          res.Key,
		Commitment:   res.Commitment,
	})
	return res, nil
}

// Abort discards the key and the secret move without disclosing either.
// It does nothing unless the session is still Committed.
func (s *Session) Abort(reason string) {
	if s.state != Committed {
		return
	}
	s.key = commitment.Key{}
	s.secret = -1
	s.state = Aborted

	s.logger.Info("Aborted before reveal", "reason", reason)
	s.audit.Aborted(s.id, reason)
}

// Result is the outcome of a revealed session.
type Result struct {
	SessionID     string
	HumanIndex    int
	HumanMove     string
	OpponentIndex int
	OpponentMove  string
	Outcome       rules.Outcome
	Key           commitment.Key
	Commitment    commitment.Commitment
}

// Verdict is the outcome as the human reads it.
func (r Result) Verdict() string {
	switch r.Outcome {
	case rules.ChallengerWins:
		return "You win!"
	case rules.DefenderWins:
		return "Computer wins!"
	default:
		return "Draw"
	}
}

// Verify recomputes the commitment from the disclosed key and move.
func (r Result) Verify() bool {
	return commitment.Verify(r.Key, r.OpponentMove, r.Commitment)
}
