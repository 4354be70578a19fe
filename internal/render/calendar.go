package render

import (
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/lipgloss"

	"termcal/internal/calendar"
	"termcal/internal/style"
	"termcal/internal/theme"
)

// Cell is one resolved date of a month view.
type Cell struct {
	Date       civil.Date
	Attributes []style.Attribute
}

// MonthView is a displayed month split into weeks of resolved cells.
type MonthView struct {
	First civil.Date
	Weeks [][]Cell
}

// BuildCalendar resolves every cell of months and groups the views into
// rows of columns months.
func BuildCalendar(months []calendar.Month, columns int, res *theme.Resolver) [][]MonthView {
	rows := make([][]MonthView, 0)
	for _, chunk := range calendar.ChunkIntoColumns(months, columns) {
		row := make([]MonthView, 0, len(chunk))
		for _, m := range chunk {
			mv := MonthView{First: m.First}
			for _, week := range m.Weeks() {
				cells := make([]Cell, 0, len(week))
				for _, d := range week {
					cells = append(cells, Cell{Date: d, Attributes: res.Cell(d, m.First)})
				}
				mv.Weeks = append(mv.Weeks, cells)
			}
			row = append(row, mv)
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *Renderer) cellWidth() int {
	if r.opts.Julian {
		return 3
	}
	return 2
}

// monthWidth includes the trailing space of the last cell.
func (r *Renderer) monthWidth() int {
	return 7*r.cellWidth() + 7
}

func (r *Renderer) dayText(d civil.Date) string {
	if r.opts.Julian {
		return fmt.Sprintf("%03d", calendar.YearDay(d))
	}
	return fmt.Sprintf("%2d", d.Day)
}

func (r *Renderer) weekdayHeader() string {
	w := r.cellWidth()
	names := make([]string, 0, 7)
	for _, wd := range r.opts.Convention.Weekdays() {
		names = append(names, wd.String()[:w])
	}
	return strings.Join(names, " ")
}

func (r *Renderer) monthTitle(first civil.Date) string {
	if r.opts.YearView {
		return first.Month.String()
	}
	return first.Month.String() + " " + strconv.Itoa(first.Year)
}

func center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

func blank(n int) string {
	return strings.Repeat(" ", n)
}

// Calendar lays out rows of month views side by side. Each month block is
// followed by a separating space and every row by an empty line.
func (r *Renderer) Calendar(rows [][]MonthView) string {
	var b strings.Builder
	width := r.monthWidth()

	if r.opts.YearView && len(rows) > 0 && len(rows[0]) > 0 {
		year := strconv.Itoa(rows[0][0].First.Year)
		b.WriteString(center(year, (width+1)*len(rows[0])))
		b.WriteString("\n")
	}

	header := r.weekdayHeader()
	for _, row := range rows {
		for _, mv := range row {
			b.WriteString(center(r.monthTitle(mv.First), width))
			b.WriteString(" ")
		}
		b.WriteString("\n")

		for range row {
			b.WriteString(center(header, width))
			b.WriteString(" ")
		}
		b.WriteString("\n")

		weeks := 0
		for _, mv := range row {
			weeks = max(weeks, len(mv.Weeks))
		}
		for i := 0; i < weeks; i++ {
			for _, mv := range row {
				if i >= len(mv.Weeks) {
					b.WriteString(blank(width))
				} else {
					for _, c := range mv.Weeks[i] {
						b.WriteString(r.paint(r.dayText(c.Date), c.Attributes))
						b.WriteString(" ")
					}
				}
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
