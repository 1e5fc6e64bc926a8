package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width returns the display width of s in cells
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to width cells with a … suffix
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// Row is one wrapped line; Start is the grapheme offset of its first grapheme in the source text
type Row struct {
	Text  string
	Start int
}

// Wrap breaks text into lines of at most width cells on word boundaries
// Words wider than a line are split between graphemes; explicit newlines are kept
func Wrap(text string, width int) []string {
	rows := WrapRows(text, width)
	if rows == nil {
		return nil
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = row.Text
	}
	return lines
}

// WrapRows wraps like Wrap, keeping each row a contiguous run of source graphemes
// Spacing inside a row is kept as spaces; spacing at a break is dropped
func WrapRows(text string, width int) []Row {
	if width <= 0 {
		return nil
	}

	var gs []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		gs = append(gs, g.Str())
	}

	var rows []Row
	for from := 0; from <= len(gs); {
		to := from
		for to < len(gs) && !isNewline(gs[to]) {
			to++
		}
		rows = wrapParagraph(rows, gs, from, to, width)
		from = to + 1
	}
	return rows
}

// wrapParagraph appends the rows of gs[from:to], which holds no newline
func wrapParagraph(rows []Row, gs []string, from, to, width int) []Row {
	first := len(rows)
	start, end, lineW := -1, -1, 0
	emit := func() {
		if start >= 0 {
			rows = append(rows, makeRow(gs, start, end))
		}
		start, end, lineW = -1, -1, 0
	}

	for i := from; i < to; {
		if isSpace(gs[i]) {
			i++
			continue
		}
		ws := i
		for i < to && !isSpace(gs[i]) {
			i++
		}
		we := i
		ww := spanWidth(gs, ws, we)

		if ww > width {
			emit()
			for cs := ws; cs < we; {
				ce, cw := cs, 0
				for ce < we {
					w := graphemeWidth(gs[ce])
					if cw+w > width && cw > 0 {
						break
					}
					cw += w
					ce++
				}
				emit()
				start, end, lineW = cs, ce, cw
				cs = ce
			}
			continue
		}

		if start >= 0 {
			need := spanWidth(gs, end, ws) + ww
			if lineW+need <= width {
				end = we
				lineW += need
				continue
			}
			emit()
		}
		start, end, lineW = ws, we, ww
	}

	emit()
	if len(rows) == first {
		rows = append(rows, Row{Start: from})
	}
	return rows
}

func makeRow(gs []string, start, end int) Row {
	var b strings.Builder
	for _, s := range gs[start:end] {
		if isSpace(s) {
			s = " "
		}
		b.WriteString(s)
	}
	return Row{Text: b.String(), Start: start}
}

func spanWidth(gs []string, from, to int) int {
	w := 0
	for _, s := range gs[from:to] {
		w += graphemeWidth(s)
	}
	return w
}

// graphemeWidth counts whitespace as one cell since it is drawn as a space
func graphemeWidth(s string) int {
	if isSpace(s) {
		return 1
	}
	return runewidth.StringWidth(s)
}

func isSpace(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isNewline(s string) bool {
	return s == "\n" || s == "\r\n"
}
