package ui

import "github.com/gdamore/tcell/v2"

// PressOffset is how many rows a held button sinks
const PressOffset = 1

// Button is a clickable label; a click is press then release inside
type Button struct {
	Label   string
	Hovered bool
	Pressed bool
	Focused bool

	// Rect is where the button was last drawn, in absolute cells
	Rect Rect
}

// Handle applies m; pressed is true on the press edge, clicked on a release inside
func (b *Button) Handle(m Mouse) (pressed, clicked bool) {
	inside := b.Rect.Contains(m.X, m.Y)
	b.Hovered = inside

	switch m.Action {
	case MousePress:
		if inside {
			b.Pressed = true
			return true, false
		}
	case MouseRelease:
		if b.Pressed {
			b.Pressed = false
			return false, inside
		}
	}
	return false, false
}

// Draw renders the button into r, sinking by PressOffset while held
func (b *Button) Draw(r Region, t Theme) {
	b.Rect = r.Rect

	bg := t.ButtonBg
	switch {
	case b.Pressed:
		bg = t.PressedBg
	case b.Hovered:
		bg = t.HoverBg
	case b.Focused:
		bg = t.FocusBg
	}

	face := r
	if b.Pressed {
		face = Region{S: r.S, Rect: Rect{X: r.X, Y: r.Y + PressOffset, W: r.W, H: r.H}}
	}
	fill := Style(t.ButtonFg, bg)
	face.BoxFilled(Style(t.Border, bg), fill)

	label := Truncate(b.Label, face.W-4)
	face.TextCenter(face.H/2, label, fill.Bold(b.Focused || b.Hovered))
}

// ButtonList is a set of buttons with keyboard focus
type ButtonList struct {
	Buttons []*Button
	Focus   int
}

// NewButtonList creates buttons for labels with focus on the first
func NewButtonList(labels ...string) *ButtonList {
	l := &ButtonList{}
	for _, label := range labels {
		l.Buttons = append(l.Buttons, &Button{Label: label})
	}
	l.setFocus(0)
	return l
}

func (l *ButtonList) setFocus(i int) {
	if len(l.Buttons) == 0 {
		return
	}
	n := len(l.Buttons)
	l.Focus = ((i % n) + n) % n
	for k, b := range l.Buttons {
		b.Focused = k == l.Focus
	}
}

// HandleKey moves focus with arrows/tab; returns the activated index on Enter, else -1
func (l *ButtonList) HandleKey(ev *tcell.EventKey) int {
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyLeft, tcell.KeyBacktab:
		l.setFocus(l.Focus - 1)
	case tcell.KeyDown, tcell.KeyRight, tcell.KeyTab:
		l.setFocus(l.Focus + 1)
	case tcell.KeyEnter:
		if len(l.Buttons) > 0 {
			return l.Focus
		}
	}
	return -1
}

// HandleMouse routes m to every button; returns the pressed index, the clicked index, or -1
func (l *ButtonList) HandleMouse(m Mouse) (pressed, clicked int) {
	pressed, clicked = -1, -1
	for i, b := range l.Buttons {
		p, c := b.Handle(m)
		if p {
			pressed = i
			l.setFocus(i)
		}
		if c {
			clicked = i
		}
	}
	return pressed, clicked
}

// DrawVertical stacks buttons centered in r
func (l *ButtonList) DrawVertical(r Region, t Theme, w, h, gap int) {
	total := len(l.Buttons)*h + max(len(l.Buttons)-1, 0)*gap
	col := r.Centered(w, total)
	for i, b := range l.Buttons {
		b.Draw(col.Sub(0, i*(h+gap), w, h), t)
	}
}

// DrawHorizontal places buttons side by side centered in r
func (l *ButtonList) DrawHorizontal(r Region, t Theme, w, h, gap int) {
	total := len(l.Buttons)*w + max(len(l.Buttons)-1, 0)*gap
	row := r.Centered(total, h)
	for i, b := range l.Buttons {
		b.Draw(row.Sub(i*(w+gap), 0, w, h), t)
	}
}
