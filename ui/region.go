package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Rect is an absolute screen rectangle used for hit testing
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether absolute cell (x, y) is inside
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports a zero-area rectangle
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Region is a clipped drawing area on a screen, coordinates relative to its origin
type Region struct {
	S tcell.Screen
	Rect
}

// Full returns a region covering the whole screen
func Full(s tcell.Screen) Region {
	w, h := s.Size()
	return Region{S: s, Rect: Rect{W: w, H: h}}
}

// Sub returns a nested region clipped to the parent
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	w = min(w, r.W-x)
	h = min(h, r.H-y)

	return Region{
		S:    r.S,
		Rect: Rect{X: r.X + x, Y: r.Y + y, W: max(w, 0), H: max(h, 0)},
	}
}

// Inset shrinks the region by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Centered returns a w x h region centered in r
func (r Region) Centered(w, h int) Region {
	return r.Sub((r.W-w)/2, (r.H-h)/2, w, h)
}

// Cell sets one cell with bounds checking
func (r Region) Cell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.S.SetContent(r.X+x, r.Y+y, ch, nil, style)
}

// Fill paints every cell with a blank in style
func (r Region) Fill(style tcell.Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.S.SetContent(r.X+x, r.Y+y, ' ', nil, style)
		}
	}
}

// Text draws s from (x, y) clipped to the region, returning columns used
// Wide graphemes take two cells; combining marks ride on their base rune
func (r Region) Text(x, y int, s string, style tcell.Style) int {
	if y < 0 || y >= r.H {
		return 0
	}
	start := x
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		w := runewidth.StringWidth(g.Str())
		if w == 0 {
			continue
		}
		if x+w > r.W {
			break
		}
		if x >= 0 {
			r.S.SetContent(r.X+x, r.Y+y, runes[0], runes[1:], style)
		}
		x += w
	}
	return x - start
}

// TextCenter draws s horizontally centered on row y
func (r Region) TextCenter(y int, s string, style tcell.Style) {
	w := runewidth.StringWidth(s)
	r.Text(max((r.W-w)/2, 0), y, s, style)
}

// Box draws a single-line border on the region edge
func (r Region) Box(style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	for x := 1; x < r.W-1; x++ {
		r.Cell(x, 0, '─', style)
		r.Cell(x, r.H-1, '─', style)
	}
	for y := 1; y < r.H-1; y++ {
		r.Cell(0, y, '│', style)
		r.Cell(r.W-1, y, '│', style)
	}
	r.Cell(0, 0, '┌', style)
	r.Cell(r.W-1, 0, '┐', style)
	r.Cell(0, r.H-1, '└', style)
	r.Cell(r.W-1, r.H-1, '┘', style)
}

// BoxFilled fills the interior then draws the border
func (r Region) BoxFilled(border, fill tcell.Style) {
	r.Fill(fill)
	r.Box(border)
}
