// Package display formats everything the console shows: the commitment, the
// move menu, the reveal and the comparison table. It holds no game logic; the
// table is a projection of rules.Matrix.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/fairplay/internal/commitment"
	"github.com/lox/fairplay/internal/game"
	"github.com/lox/fairplay/internal/moves"
	"github.com/lox/fairplay/internal/rules"
)

// Menu tokens handled by the console rather than the game.
const (
	ExitToken = "0"
	HelpToken = "?"
)

// CornerLabel heads the comparison table: rows are the computer's moves,
// columns the user's.
const CornerLabel = `v PC\User >`

// Title renders the banner line.
func (p *Printer) Title(text string) string {
	return p.styles.Title.Render(text)
}

// Commitment renders the published HMAC.
func (p *Printer) Commitment(c commitment.Commitment) string {
	return "HMAC: " + p.styles.Digest.Render(c.String())
}

// Menu lists the moves with their 1-based numbers followed by the exit and
// help tokens.
func (p *Printer) Menu(set moves.Set) string {
	var b strings.Builder
	b.WriteString("Available moves:\n")
	for i, name := range set.Names() {
		fmt.Fprintf(&b, "%d - %s\n", i+1, p.styles.Move.Render(name))
	}
	fmt.Fprintf(&b, "%s - Exit\n", ExitToken)
	fmt.Fprintf(&b, "%s - Help", HelpToken)
	return b.String()
}

// Prompt renders the input prompt.
func (p *Printer) Prompt() string {
	return p.styles.Prompt.Render("Enter your move: ")
}

// Result renders a revealed game: both moves, the verdict and the key.
func (p *Printer) Result(res game.Result) string {
	verdict := res.Verdict()
	switch res.Outcome {
	case rules.ChallengerWins:
		verdict = p.styles.Success.Render(verdict)
	case rules.DefenderWins:
		verdict = p.styles.Error.Render(verdict)
	default:
		verdict = p.styles.Warning.Render(verdict)
	}

	lines := []string{
		"Your move: " + p.styles.Move.Render(res.HumanMove),
		"Computer move: " + p.styles.Move.Render(res.OpponentMove),
		verdict,
		"HMAC key: " + p.styles.Digest.Render(res.Key.String()),
	}
	return strings.Join(lines, "\n")
}

// Error renders an error line.
func (p *Printer) Error(msg string) string {
	return p.styles.Error.Render(msg)
}

// Info renders a secondary line.
func (p *Printer) Info(msg string) string {
	return p.styles.Info.Render(msg)
}

// Cell is the table text for an outcome seen from the user's column.
func Cell(o rules.Outcome) string {
	switch o {
	case rules.ChallengerWins:
		return "Win"
	case rules.DefenderWins:
		return "Lose"
	default:
		return "Draw"
	}
}

// Table renders the comparison grid for set. Each cell is the result for the
// user playing the column's move against the computer playing the row's move.
func (p *Printer) Table(set moves.Set) string {
	names := set.Names()
	matrix := rules.Matrix(set.Len())

	rows := make([][]string, len(names))
	for r, defender := range names {
		row := make([]string, 0, len(names)+1)
		row = append(row, defender)
		for c := range names {
			row = append(row, Cell(matrix[r][c]))
		}
		rows[r] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.styles.Border).
		BorderRow(true).
		Headers(append([]string{CornerLabel}, names...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return p.styles.Header
			case col == 0:
				return p.styles.RowLabel
			case row < 0 || row >= len(matrix):
				return p.styles.Cell
			}
			switch matrix[row][col-1] {
			case rules.ChallengerWins:
				return p.styles.WinCell
			case rules.DefenderWins:
				return p.styles.LoseCell
			default:
				return p.styles.DrawCell
			}
		})

	caption := p.styles.TableTitle.Render("Results are from the user's point of view.")
	return t.String() + "\n" + caption
}
