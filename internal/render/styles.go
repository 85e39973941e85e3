// Package render draws passbook data for the terminal.
package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"
)

// Styles holds lipgloss styles bound to one output writer, so color is only
// emitted when that writer is a terminal.
type Styles struct {
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	amount  lipgloss.Style
	header  lipgloss.Style
	dim     lipgloss.Style
	bar     lipgloss.Style
}

// NewStyles creates Styles for w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00AF5F", Dark: "#00D787"}),
		failure: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F87"}),
		info:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005FD7", Dark: "#5FAFFF"}),
		amount:  r.NewStyle().Foreground(lipgloss.Color("5")),
		header:  r.NewStyle().Bold(true),
		dim:     r.NewStyle().Faint(true),
		bar:     r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// Success prints a success line.
func (s *Styles) Success(format string, args ...any) {
	_, _ = fmt.Fprintf(s.w, "%s %s\n", s.success.Render(successSymbol), fmt.Sprintf(format, args...))
}

// Error prints an error line.
func (s *Styles) Error(format string, args ...any) {
	_, _ = fmt.Fprintf(s.w, "%s %s\n", s.failure.Render(errorSymbol), s.failure.Render(fmt.Sprintf(format, args...)))
}

// Info prints an informational line.
func (s *Styles) Info(format string, args ...any) {
	_, _ = fmt.Fprintf(s.w, "%s %s\n", s.info.Render(infoSymbol), fmt.Sprintf(format, args...))
}

// Points formats an amount with thousands separators.
func Points(n int64) string {
	return humanize.Comma(n)
}
