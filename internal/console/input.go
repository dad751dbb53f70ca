package console

import (
	"bufio"
	"io"

	"github.com/chzyer/readline"
)

// LineReader is a source of input lines. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

// prompter is implemented by readers that draw their own prompt.
type prompter interface {
	SetPrompt(string)
}

type scanReader struct {
	sc *bufio.Scanner
}

// NewLineReader reads lines from r without any terminal handling, for piped
// input and tests.
func NewLineReader(r io.Reader) LineReader {
	return &scanReader{sc: bufio.NewScanner(r)}
}

func (s *scanReader) Readline() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// NewTerminalReader returns a readline instance for an interactive terminal.
// History is disabled so moves are never written to disk.
func NewTerminalReader() (*readline.Instance, error) {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("?"),
		readline.PcItem("0"),
	)
	return readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryLimit:    -1,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}
