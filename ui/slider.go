package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

const DefaultSliderStep = 0.05

// Slider is a 0..1 value with a label row above a draggable track
type Slider struct {
	Label    string
	Value    float64
	Step     float64
	Dragging bool
	Focused  bool

	// Rect is the last drawn area; row 1 is the track
	Rect Rect
}

func NewSlider(label string, value float64) *Slider {
	return &Slider{Label: label, Value: clamp01(value), Step: DefaultSliderStep}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func (s *Slider) track() Rect {
	return Rect{X: s.Rect.X, Y: s.Rect.Y + 1, W: s.Rect.W, H: 1}
}

// valueAt maps an absolute column onto the track
func (s *Slider) valueAt(x int) float64 {
	tr := s.track()
	if tr.W <= 1 {
		return s.Value
	}
	return clamp01(float64(x-tr.X) / float64(tr.W-1))
}

// Handle applies m; changed reports a new value, released the end of a drag
func (s *Slider) Handle(m Mouse) (changed, released bool) {
	old := s.Value
	switch m.Action {
	case MousePress:
		if !s.Rect.Contains(m.X, m.Y) {
			return false, false
		}
		s.Dragging = true
		s.Value = s.valueAt(m.X)
	case MouseDrag:
		if !s.Dragging {
			return false, false
		}
		s.Value = s.valueAt(m.X)
	case MouseRelease:
		if !s.Dragging {
			return false, false
		}
		s.Dragging = false
		s.Value = s.valueAt(m.X)
		return s.Value != old, true
	default:
		return false, false
	}
	return s.Value != old, false
}

// HandleKey nudges the value with Left/Right
func (s *Slider) HandleKey(ev *tcell.EventKey) bool {
	step := s.Step
	if step <= 0 {
		step = DefaultSliderStep
	}
	old := s.Value
	switch ev.Key() {
	case tcell.KeyLeft:
		s.Value = clamp01(s.Value - step)
	case tcell.KeyRight:
		s.Value = clamp01(s.Value + step)
	case tcell.KeyHome:
		s.Value = 0
	case tcell.KeyEnd:
		s.Value = 1
	default:
		return false
	}
	return s.Value != old
}

// Draw renders the label row and the track into r (two rows)
func (s *Slider) Draw(r Region, t Theme) {
	s.Rect = r.Rect

	labelStyle := t.Base()
	if s.Focused {
		labelStyle = labelStyle.Foreground(t.SpeakerFg).Bold(true)
	}
	r.Text(0, 0, s.Label, labelStyle)
	value := fmt.Sprintf("%.2f", s.Value)
	r.Text(r.W-Width(value), 0, value, t.Hint())

	if r.W <= 0 {
		return
	}
	knob := int(s.Value*float64(r.W-1) + 0.5)
	for x := 0; x < r.W; x++ {
		switch {
		case x == knob:
			r.Cell(x, 1, '●', Style(t.FillFg, t.Bg))
		case x < knob:
			r.Cell(x, 1, '━', Style(t.FillFg, t.Bg))
		default:
			r.Cell(x, 1, '─', Style(t.TrackFg, t.Bg))
		}
	}
}
