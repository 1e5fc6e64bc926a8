package ui

import "github.com/gdamore/tcell/v2"

// MouseAction classifies a mouse event relative to the previous one
type MouseAction uint8

const (
	MouseMove MouseAction = iota
	MousePress
	MouseDrag
	MouseRelease
)

// Mouse is a primary-button event in absolute cells
type Mouse struct {
	X, Y   int
	Action MouseAction
}

// Pointer turns tcell's button-state events into press/drag/release edges
type Pointer struct {
	held bool
}

// Translate classifies ev against the last seen button state
func (p *Pointer) Translate(ev *tcell.EventMouse) Mouse {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	m := Mouse{X: x, Y: y}
	switch {
	case down && !p.held:
		m.Action = MousePress
	case down:
		m.Action = MouseDrag
	case p.held:
		m.Action = MouseRelease
	default:
		m.Action = MouseMove
	}
	p.held = down
	return m
}

// Held reports whether the primary button is down
func (p *Pointer) Held() bool {
	return p.held
}

// IsContinue reports the keys that advance dialogue
func IsContinue(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		return true
	case tcell.KeyRune:
		return ev.Rune() == ' '
	}
	return false
}
