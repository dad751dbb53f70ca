package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles contains styling for console output
type Styles struct {
	Title      lipgloss.Style
	Prompt     lipgloss.Style
	Info       lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Digest     lipgloss.Style
	Move       lipgloss.Style
	Border     lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	WinCell    lipgloss.Style
	LoseCell   lipgloss.Style
	DrawCell   lipgloss.Style
	RowLabel   lipgloss.Style
	TableTitle lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Prompt:     r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:       r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:      r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning:    r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Digest:     r.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Move:       r.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
		Border:     r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Header:     r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true).Padding(0, 1),
		Cell:       r.NewStyle().Padding(0, 1),
		WinCell:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Padding(0, 1),
		LoseCell:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Padding(0, 1),
		DrawCell:   r.NewStyle().Foreground(lipgloss.Color("#626262")).Padding(0, 1),
		RowLabel:   r.NewStyle().Foreground(lipgloss.Color("#74B9FF")).Bold(true).Padding(0, 1),
		TableTitle: r.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true),
	}
}

// Printer renders game output for one terminal.
type Printer struct {
	renderer *lipgloss.Renderer
	styles   Styles
}

// New returns a Printer whose colour support is detected from w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{renderer: r, styles: newStyles(r)}
}

// NewWithProfile returns a Printer with a fixed colour profile. termenv.Ascii
// disables styling entirely.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return &Printer{renderer: r, styles: newStyles(r)}
}

// Styles returns the styles in use.
func (p *Printer) Styles() Styles {
	return p.styles
}
