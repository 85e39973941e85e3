package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type align int

const (
	alignLeft align = iota
	alignRight
)

type column struct {
	title string
	align align
	max   int // 0 = unlimited
}

// table lays out cells by display width so wide (Hangul, CJK) text lines up.
type table struct {
	cols []column
	rows [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	w := make([]int, len(t.cols))
	for i, c := range t.cols {
		w[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			cw := runewidth.StringWidth(t.clip(i, cell))
			if cw > w[i] {
				w[i] = cw
			}
		}
	}
	return w
}

func (t *table) clip(col int, cell string) string {
	if m := t.cols[col].max; m > 0 && runewidth.StringWidth(cell) > m {
		return runewidth.Truncate(cell, m, "…")
	}
	return cell
}

func (t *table) write(w io.Writer, s *Styles) error {
	widths := t.widths()

	titles := make([]string, len(t.cols))
	for i, c := range t.cols {
		titles[i] = pad(c.title, widths[i], c.align)
	}
	if _, err := fmt.Fprintln(w, s.header.Render(strings.Join(titles, "  "))); err != nil {
		return err
	}

	rules := make([]string, len(t.cols))
	for i := range t.cols {
		rules[i] = strings.Repeat("─", widths[i])
	}
	if _, err := fmt.Fprintln(w, s.dim.Render(strings.Join(rules, "  "))); err != nil {
		return err
	}

	for _, row := range t.rows {
		cells := make([]string, len(t.cols))
		for i := range t.cols {
			var cell string
			if i < len(row) {
				cell = t.clip(i, row[i])
			}
			cells[i] = pad(cell, widths[i], t.cols[i].align)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func pad(s string, width int, a align) string {
	if a == alignRight {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}
