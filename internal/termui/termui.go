// Package termui renders employee records for the command line.
// Colours follow the active theme: the saved preference, or the terminal
// background when none is saved.
package termui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vesaa/staffdesk/internal/intl"
	"github.com/vesaa/staffdesk/internal/models"
	"github.com/vesaa/staffdesk/internal/theme"
)

// Palette is the colour set of one theme mode.
type Palette struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Danger     lipgloss.Color
}

var (
	lightPalette = Palette{
		Foreground: lipgloss.Color("#1f2933"),
		Primary:    lipgloss.Color("#1d4ed8"),
		Muted:      lipgloss.Color("#6b7280"),
		Border:     lipgloss.Color("#d1d5db"),
		Success:    lipgloss.Color("#15803d"),
		Danger:     lipgloss.Color("#b91c1c"),
	}
	darkPalette = Palette{
		Foreground: lipgloss.Color("#e5e7eb"),
		Primary:    lipgloss.Color("#60a5fa"),
		Muted:      lipgloss.Color("#9ca3af"),
		Border:     lipgloss.Color("#374151"),
		Success:    lipgloss.Color("#4ade80"),
		Danger:     lipgloss.Color("#f87171"),
	}
)

// PaletteFor returns the palette of mode.
func PaletteFor(mode theme.Mode) Palette {
	if mode == theme.Dark {
		return darkPalette
	}
	return lightPalette
}

// TerminalPrefersDark reports whether the terminal has a dark background.
// It is the command line's environment signal for theme.Mount.
func TerminalPrefersDark(context.Context) bool {
	return lipgloss.HasDarkBackground()
}

// Styles are the lipgloss styles the printer renders with.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds the styles of mode for renderer r.
func NewStyles(r *lipgloss.Renderer, mode theme.Mode) Styles {
	p := PaletteFor(mode)
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(p.Primary),
		Header:  r.NewStyle().Bold(true).Foreground(p.Foreground).Padding(0, 1),
		Cell:    r.NewStyle().Foreground(p.Foreground).Padding(0, 1),
		Muted:   r.NewStyle().Foreground(p.Muted),
		Success: r.NewStyle().Foreground(p.Success),
		Error:   r.NewStyle().Bold(true).Foreground(p.Danger),
	}
}

// Printer writes styled, localized output.
type Printer struct {
	w  io.Writer
	st Styles
	t  *intl.Translator
}

// NewPrinter returns a printer writing to w in the colours of mode.
func NewPrinter(w io.Writer, mode theme.Mode, t *intl.Translator) *Printer {
	return &Printer{
		w:  w,
		st: NewStyles(lipgloss.NewRenderer(w), mode),
		t:  t,
	}
}

// Success prints a confirmation line.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.st.Success.Render("✓ "+msg))
}

// Error prints a failure line.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.st.Error.Render("✗ "+msg))
}

// Employees prints list as a table, or the empty-list notice.
func (p *Printer) Employees(list []models.Employee) {
	if len(list) == 0 {
		fmt.Fprintln(p.w, p.st.Muted.Render(p.t.T("Employees.Empty")))
		return
	}

	headers := []string{
		"ID",
		p.t.T("Employee.WorkID"),
		p.t.T("Employee.Name"),
		p.t.T("Employee.JobTitle"),
		p.t.T("Employee.Gender"),
		p.t.T("Employee.HireDate"),
	}
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{
			idText(e),
			e.WorkID,
			e.Name,
			e.JobTitle,
			p.gender(e.Gender),
			models.FormatDate(e.HireDate),
		})
	}
	fmt.Fprint(p.w, p.table(headers, rows))
}

// Employee prints one record as label/value lines.
func (p *Printer) Employee(e models.Employee) {
	fmt.Fprintln(p.w, p.st.Title.Render(e.Name))
	fields := [][2]string{
		{"ID", idText(e)},
		{p.t.T("Employee.WorkID"), e.WorkID},
		{p.t.T("Employee.JobTitle"), e.JobTitle},
		{p.t.T("Employee.Gender"), p.gender(e.Gender)},
		{p.t.T("Employee.HireDate"), models.FormatDate(e.HireDate)},
	}
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f[0]))
	}
	for _, f := range fields {
		label := p.st.Muted.Width(width + 2).Render(f[0])
		fmt.Fprintln(p.w, label+f[1])
	}
}

func (p *Printer) gender(g models.Gender) string {
	switch g {
	case models.GenderMale:
		return p.t.T("Employee.Male")
	case models.GenderFemale:
		return p.t.T("Employee.Female")
	}
	return string(g)
}

func (p *Printer) table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	// cell padding
	total := len(headers) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	sep := p.st.Muted.Render("│")
	var sb strings.Builder
	line := func(style lipgloss.Style, cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style.Width(widths[i]).Render(c)
		}
		sb.WriteString(strings.Join(parts, sep))
		sb.WriteString("\n")
	}

	line(p.st.Header, headers)
	sb.WriteString(p.st.Muted.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")
	for _, row := range rows {
		line(p.st.Cell, row)
	}
	return sb.String()
}

func idText(e models.Employee) string {
	if !e.Persisted() {
		return "-"
	}
	return strconv.FormatInt(e.IDValue(), 10)
}
