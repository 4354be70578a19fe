// Package render turns resolved calendar cells, occurrences and the
// reference date into terminal text.
package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"termcal/internal/calendar"
	"termcal/internal/style"
)

// Options controls the calendar layout.
type Options struct {
	Convention calendar.WeekConvention
	// Julian prints the day of the year instead of the day of the month.
	Julian bool
	// YearView prints a year header and omits the year from month titles.
	YearView bool
}

// Renderer writes styled text through a lipgloss renderer, which decides
// how much of a style the output terminal can show.
type Renderer struct {
	lg   *lipgloss.Renderer
	opts Options
}

// NewRenderer creates a Renderer. A nil lg uses lipgloss' default renderer.
func NewRenderer(lg *lipgloss.Renderer, opts Options) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &Renderer{lg: lg, opts: opts}
}

// Style folds attrs and converts the result into a lipgloss style.
func (r *Renderer) Style(attrs []style.Attribute) lipgloss.Style {
	return r.convert(style.Fold(attrs))
}

func (r *Renderer) convert(s style.Style) lipgloss.Style {
	ls := r.lg.NewStyle()
	if s.Bold {
		ls = ls.Bold(true)
	}
	if s.Dimmed {
		ls = ls.Faint(true)
	}
	if s.Italic {
		ls = ls.Italic(true)
	}
	if s.Underline {
		ls = ls.Underline(true)
	}
	if s.Blink {
		ls = ls.Blink(true)
	}
	if s.Reverse {
		ls = ls.Reverse(true)
	}
	if s.Strikethrough {
		ls = ls.Strikethrough(true)
	}
	if s.Foreground != nil {
		ls = ls.Foreground(terminalColor(*s.Foreground))
	}
	if s.Background != nil {
		ls = ls.Background(terminalColor(*s.Background))
	}
	return ls
}

// paint renders text with attrs. Hidden text becomes blanks of the same
// width so nothing, not even a background, reaches the terminal.
func (r *Renderer) paint(text string, attrs []style.Attribute) string {
	if len(attrs) == 0 {
		return text
	}
	s := style.Fold(attrs)
	if s.Hidden {
		return blank(lipgloss.Width(text))
	}
	if s.IsZero() {
		return text
	}
	return r.convert(s).Render(text)
}

func terminalColor(c style.Color) lipgloss.TerminalColor {
	switch c.Mode {
	case style.ColorRGB:
		return lipgloss.Color(c.Hex())
	default:
		// Named colors are the first eight entries of the ANSI palette.
		return lipgloss.Color(strconv.Itoa(int(c.Index)))
	}
}
