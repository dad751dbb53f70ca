package game

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairplay/internal/audit"
	"github.com/lox/fairplay/internal/commitment"
	"github.com/lox/fairplay/internal/moves"
	"github.com/lox/fairplay/internal/rules"
)

var rpsls = moves.MustNew("rock", "paper", "scissors", "lizard", "spock")

// forcedSource yields a move draw selecting index secret, followed by a
// constant key.
func forcedSource(secret byte, keyByte byte) io.Reader {
	draw := []byte{0, 0, 0, 0, 0, 0, 0, secret}
	return bytes.NewReader(append(draw, bytes.Repeat([]byte{keyByte}, commitment.KeySize)...))
}

func TestNewSessionIsCommitted(t *testing.T) {
	s, err := NewSession(rpsls)
	require.NoError(t, err)

	assert.Equal(t, Committed, s.State())
	assert.NotEmpty(t, s.ID())
	assert.Len(t, s.Commitment().String(), commitment.HexLen)
	assert.Equal(t, rpsls.Names(), s.Moves().Names())
}

func TestSessionsUseFreshKeys(t *testing.T) {
	a, err := NewSession(rpsls)
	require.NoError(t, err)
	b, err := NewSession(rpsls)
	require.NoError(t, err)

	ra, err := a.Reveal(0)
	require.NoError(t, err)
	rb, err := b.Reveal(0)
	require.NoError(t, err)

	assert.NotEqual(t, ra.Key, rb.Key)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestRockAgainstSpock(t *testing.T) {
	s, err := NewSession(rpsls, WithRandom(forcedSource(4, 0x42)))
	require.NoError(t, err)
	published := s.Commitment()

	res, err := s.Reveal(rpsls.Index("rock"))
	require.NoError(t, err)

	assert.Equal(t, "rock", res.HumanMove)
	assert.Equal(t, "spock", res.OpponentMove)
	assert.Equal(t, 4, res.OpponentIndex)
	assert.Equal(t, rules.Resolve(0, res.OpponentIndex, 5), res.Outcome)
	assert.Equal(t, rules.ChallengerWins, res.Outcome)
	assert.Equal(t, "You win!", res.Verdict())

	assert.Equal(t, published, res.Commitment)
	assert.True(t, commitment.Verify(res.Key, "spock", published))
	assert.True(t, res.Verify())
	assert.Equal(t, strings.Repeat("42", commitment.KeySize), res.Key.String())
	assert.Equal(t, Revealed, s.State())
}

func TestVerdicts(t *testing.T) {
	tests := []struct {
		human int
		want  string
	}{
		{human: 1, want: "Draw"},           // paper vs paper
		{human: 2, want: "You win!"},       // scissors beats paper
		{human: 0, want: "Computer wins!"}, // paper beats rock
	}
	for _, tt := range tests {
		s, err := NewSession(moves.MustNew("rock", "paper", "scissors"), WithRandom(forcedSource(1, 0x01)))
		require.NoError(t, err)
		res, err := s.Reveal(tt.human)
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Verdict())
	}
}

func TestInvalidIndexKeepsSessionOpen(t *testing.T) {
	s, err := NewSession(rpsls)
	require.NoError(t, err)

	for _, idx := range []int{-1, 5, 100} {
		_, err := s.Reveal(idx)
		require.ErrorIs(t, err, ErrInvalidMoveIndex)
		assert.Equal(t, Committed, s.State())
	}

	res, err := s.Reveal(2)
	require.NoError(t, err)
	assert.True(t, res.Verify())
}

func TestRevealOnlyOnce(t *testing.T) {
	s, err := NewSession(rpsls)
	require.NoError(t, err)

	_, err = s.Reveal(0)
	require.NoError(t, err)

	_, err = s.Reveal(1)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Equal(t, Revealed, s.State())
}

func TestAbortDiscardsKey(t *testing.T) {
	var logs, trail bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})

	s, err := NewSession(rpsls,
		WithRandom(forcedSource(2, 0x7e)),
		WithLogger(logger),
		WithAudit(audit.New(&trail)),
	)
	require.NoError(t, err)

	s.Abort("eof")
	assert.Equal(t, Aborted, s.State())
	assert.True(t, s.key.IsZero())

	_, err = s.Reveal(0)
	assert.ErrorIs(t, err, ErrSessionClosed)

	key := strings.Repeat("7e", commitment.KeySize)
	assert.NotContains(t, logs.String(), key)
	assert.NotContains(t, trail.String(), key)
	assert.Contains(t, trail.String(), audit.EventAborted)

	// Abort after abort or after reveal is a no-op.
	s.Abort("again")
	assert.Equal(t, 1, strings.Count(trail.String(), audit.EventAborted))
}

func TestAbortAfterRevealIsNoop(t *testing.T) {
	s, err := NewSession(rpsls)
	require.NoError(t, err)
	res, err := s.Reveal(3)
	require.NoError(t, err)

	s.Abort("late")
	assert.Equal(t, Revealed, s.State())
	assert.True(t, res.Verify())
}

func TestEntropyFailureIsFatal(t *testing.T) {
	_, err := NewSession(rpsls, WithRandom(bytes.NewReader(nil)))
	require.ErrorIs(t, err, commitment.ErrEntropy)

	// Enough for the move draw but not for the key.
	_, err = NewSession(rpsls, WithRandom(bytes.NewReader(make([]byte, 8+commitment.KeySize-1))))
	require.ErrorIs(t, err, commitment.ErrEntropy)

	_, err = NewSession(rpsls, WithRandom(errReader{}))
	require.ErrorIs(t, err, commitment.ErrEntropy)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("getrandom: ENOSYS") }

func TestNewSessionRejectsInvalidSet(t *testing.T) {
	_, err := NewSession(moves.Set{})
	assert.ErrorIs(t, err, moves.ErrOddCountRequired)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "committed", Committed.String())
	assert.Equal(t, "revealed", Revealed.String())
	assert.Equal(t, "aborted", Aborted.String())
}
