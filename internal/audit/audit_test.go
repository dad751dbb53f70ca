package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairplay/internal/commitment"
	"github.com/lox/fairplay/internal/rules"
)

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestRecorderEvents(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	key, err := commitment.NewKey()
	require.NoError(t, err)
	c := commitment.Commit(key, "spock")

	r.Committed("s1", []string{"rock", "paper", "scissors", "lizard", "spock"}, c)
	r.Revealed(Reveal{
		SessionID:    "s1",
		HumanMove:    "rock",
		OpponentMove: "spock",
		Outcome:      rules.ChallengerWins,
		Key:          key,
		Commitment:   c,
	})

	events := decodeLines(t, buf.Bytes())
	require.Len(t, events, 2)

	assert.Equal(t, EventCommitted, events[0]["event"])
	assert.Equal(t, c.String(), events[0]["hmac"])
	assert.NotContains(t, events[0], "key")

	assert.Equal(t, EventRevealed, events[1]["event"])
	assert.Equal(t, key.String(), events[1]["key"])
	assert.Equal(t, "ChallengerWins", events[1]["outcome"])
	assert.Equal(t, "spock", events[1]["computer_move"])
}

func TestAbortedNeverCarriesKey(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	key, err := commitment.NewKey()
	require.NoError(t, err)

	r.Committed("s2", []string{"a", "b", "c"}, commitment.Commit(key, "b"))
	r.Aborted("s2", "interrupted")

	assert.NotContains(t, buf.String(), key.String())
	events := decodeLines(t, buf.Bytes())
	require.Len(t, events, 2)
	assert.Equal(t, EventAborted, events[1]["event"])
	assert.Equal(t, "interrupted", events[1]["reason"])
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Committed("x", nil, commitment.Commitment{})
		r.Revealed(Reveal{})
		r.Aborted("x", "test")
		assert.NoError(t, r.Close())
	})
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	for i := 0; i < 2; i++ {
		r, err := Open(path)
		require.NoError(t, err)
		r.Aborted("s", "eof")
		require.NoError(t, r.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), EventAborted))
}
