package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// rowText reads a screen row back as a string, skipping nothing
func rowText(s tcell.Screen, y, x0, x1 int) string {
	var out []rune
	for x := x0; x < x1; x++ {
		r, _, _, _ := s.GetContent(x, y)
		out = append(out, r)
	}
	return string(out)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "hello world", 20, []string{"hello world"}},
		{"breaks", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"long word", "abcdefghij xy", 4, []string{"abcd", "efgh", "ij", "xy"}},
		{"newline", "a\n\nb", 5, []string{"a", "", "b"}},
		{"wide runes", "日本語テキスト", 6, []string{"日本語", "テキス", "ト"}},
		{"zero width", "abc", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			assert.Equal(t, tt.want, got)
			for _, line := range got {
				assert.LessOrEqual(t, Width(line), tt.width)
			}
		})
	}
}

func TestWrapRows_Offsets(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []Row
	}{
		{"hard split", "abcdefghij", 6, []Row{{"abcdef", 0}, {"ghij", 6}}},
		{"inner spacing kept", "a  b", 10, []Row{{"a  b", 0}}},
		{"break drops spacing", "ab   cd", 3, []Row{{"ab", 0}, {"cd", 5}}},
		{"tab as space", "a\tb", 5, []Row{{"a b", 0}}},
		{"newlines", "ab\n\ncd", 5, []Row{{"ab", 0}, {"", 3}, {"cd", 4}}},
		{"split after word", "x abcdefgh", 4, []Row{{"x", 0}, {"abcd", 2}, {"efgh", 6}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapRows(tt.text, tt.width))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel…", Truncate("hello", 4))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestRegion_SubClips(t *testing.T) {
	s := newScreen(t, 20, 10)
	root := Full(s)

	sub := root.Sub(15, 8, 10, 10)
	assert.Equal(t, Rect{X: 15, Y: 8, W: 5, H: 2}, sub.Rect)

	neg := root.Sub(-3, -3, 5, 5)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 2, H: 2}, neg.Rect)

	nested := root.Sub(2, 2, 10, 5).Inset(1)
	assert.Equal(t, Rect{X: 3, Y: 3, W: 8, H: 3}, nested.Rect)

	assert.True(t, nested.Contains(3, 3))
	assert.False(t, nested.Contains(11, 3))
	assert.Equal(t, Rect{X: 6, Y: 4, W: 8, H: 2}, root.Centered(8, 2).Rect)
}

func TestRegion_Text(t *testing.T) {
	s := newScreen(t, 10, 2)
	r := Full(s).Sub(1, 0, 5, 1)

	n := r.Text(0, 0, "abcdefgh", tcell.StyleDefault)
	assert.Equal(t, 5, n)
	assert.Equal(t, " abcde", rowText(s, 0, 0, 6))

	// Wide rune that would straddle the edge is dropped
	n = r.Text(0, 0, "abcd日", tcell.StyleDefault)
	assert.Equal(t, 4, n)
}

func TestButton_ClickNeedsPressAndReleaseInside(t *testing.T) {
	b := &Button{Label: "Go", Rect: Rect{X: 2, Y: 2, W: 6, H: 3}}

	p, c := b.Handle(Mouse{X: 3, Y: 3, Action: MouseMove})
	assert.False(t, p)
	assert.False(t, c)
	assert.True(t, b.Hovered)

	p, _ = b.Handle(Mouse{X: 3, Y: 3, Action: MousePress})
	assert.True(t, p)
	assert.True(t, b.Pressed)

	_, c = b.Handle(Mouse{X: 4, Y: 3, Action: MouseRelease})
	assert.True(t, c)
	assert.False(t, b.Pressed)

	// Press inside, release outside cancels
	b.Handle(Mouse{X: 3, Y: 3, Action: MousePress})
	_, c = b.Handle(Mouse{X: 30, Y: 3, Action: MouseRelease})
	assert.False(t, c)
	assert.False(t, b.Pressed)

	// Release without press does nothing
	_, c = b.Handle(Mouse{X: 3, Y: 3, Action: MouseRelease})
	assert.False(t, c)
}

func TestButtonList(t *testing.T) {
	s := newScreen(t, 40, 20)
	l := NewButtonList("New Game", "Settings", "Quit")
	assert.True(t, l.Buttons[0].Focused)

	down := tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	up := tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	enter := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)

	assert.Equal(t, -1, l.HandleKey(up))
	assert.Equal(t, 2, l.Focus)
	l.HandleKey(down)
	l.HandleKey(down)
	assert.Equal(t, 1, l.Focus)
	assert.Equal(t, 1, l.HandleKey(enter))

	l.DrawVertical(Full(s), DefaultTheme, 16, 3, 1)
	quit := l.Buttons[2].Rect
	require.False(t, quit.Empty())

	pressed, _ := l.HandleMouse(Mouse{X: quit.X + 1, Y: quit.Y + 1, Action: MousePress})
	assert.Equal(t, 2, pressed)
	assert.Equal(t, 2, l.Focus)
	_, clicked := l.HandleMouse(Mouse{X: quit.X + 1, Y: quit.Y + 1, Action: MouseRelease})
	assert.Equal(t, 2, clicked)
}

func TestPointer_Translate(t *testing.T) {
	var p Pointer
	ev := func(btn tcell.ButtonMask) *tcell.EventMouse {
		return tcell.NewEventMouse(5, 6, btn, tcell.ModNone)
	}

	assert.Equal(t, MouseMove, p.Translate(ev(tcell.ButtonNone)).Action)
	assert.Equal(t, MousePress, p.Translate(ev(tcell.Button1)).Action)
	assert.True(t, p.Held())
	assert.Equal(t, MouseDrag, p.Translate(ev(tcell.Button1)).Action)
	m := p.Translate(ev(tcell.ButtonNone))
	assert.Equal(t, Mouse{X: 5, Y: 6, Action: MouseRelease}, m)
}

func TestSlider(t *testing.T) {
	s := NewSlider("Volume", 1.5)
	assert.Equal(t, 1.0, s.Value)
	s.Rect = Rect{X: 10, Y: 5, W: 11, H: 2}

	changed, released := s.Handle(Mouse{X: 15, Y: 6, Action: MousePress})
	assert.True(t, changed)
	assert.False(t, released)
	assert.InDelta(t, 0.5, s.Value, 1e-9)

	// Drag outside keeps tracking and clamps
	s.Handle(Mouse{X: 2, Y: 0, Action: MouseDrag})
	assert.Equal(t, 0.0, s.Value)

	changed, released = s.Handle(Mouse{X: 12, Y: 9, Action: MouseRelease})
	assert.True(t, changed)
	assert.True(t, released)
	assert.InDelta(t, 0.2, s.Value, 1e-9)
	assert.False(t, s.Dragging)

	// Press outside is ignored
	changed, _ = s.Handle(Mouse{X: 0, Y: 0, Action: MousePress})
	assert.False(t, changed)

	right := tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)
	assert.True(t, s.HandleKey(right))
	assert.InDelta(t, 0.25, s.Value, 1e-9)
	assert.True(t, s.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone)))
	assert.False(t, s.HandleKey(right))
}

func TestFade_Phases(t *testing.T) {
	f := NewFade(100)
	assert.False(t, f.Active())

	f.Start()
	assert.Equal(t, FadeCover, f.Phase())

	assert.False(t, f.Update())
	assert.False(t, f.Update())
	assert.Equal(t, 200, f.Alpha())

	assert.True(t, f.Update(), "covered exactly once")
	assert.Equal(t, FadeOpaque, f.Alpha())
	assert.Equal(t, FadeReveal, f.Phase())

	covered := 0
	for i := 0; i < 10 && f.Active(); i++ {
		if f.Update() {
			covered++
		}
	}
	assert.Zero(t, covered)
	assert.False(t, f.Active())
	assert.Equal(t, 0, f.Alpha())
}

func TestFade_DrawCoversScreen(t *testing.T) {
	s := newScreen(t, 4, 2)
	white := tcell.NewRGBColor(255, 255, 255)
	Full(s).Fill(Style(white, white))

	f := NewFade(FadeOpaque)
	f.Start()
	f.Update()
	f.Draw(s)

	_, _, style, _ := s.GetContent(3, 1)
	fg, bg, _ := style.Decompose()
	black := tcell.NewRGBColor(0, 0, 0)
	assert.Equal(t, black, fg)
	assert.Equal(t, black, bg)
}

func TestDrawDialogue_PartialReveal(t *testing.T) {
	s := newScreen(t, 20, 5)
	box := Full(s)

	DrawDialogue(box, DefaultTheme, "Mia", "one two three", 5, false)
	assert.Equal(t, "one t", rowText(s, 1, 2, 7))
	assert.Equal(t, " Mia ", rowText(s, 0, 2, 7))

	r, _, _, _ := s.GetContent(17, 4)
	assert.Equal(t, '─', r)

	DrawDialogue(box, DefaultTheme, "", "one two three", 99, true)
	assert.Equal(t, "one two three", rowText(s, 1, 2, 15))
	r, _, _, _ = s.GetContent(17, 4)
	assert.Equal(t, ContinueMark, r)
}

func TestDrawDialogue_HardSplitWordFullyShown(t *testing.T) {
	s := newScreen(t, 10, 6)

	DrawDialogue(Full(s), DefaultTheme, "", "abcdefghij", 10, true)
	assert.Equal(t, "abcdef", rowText(s, 1, 2, 8))
	assert.Equal(t, "ghij", rowText(s, 2, 2, 6))

	DrawDialogue(Full(s), DefaultTheme, "", "abcdefghij", 7, false)
	assert.Equal(t, "abcdef", rowText(s, 1, 2, 8))
	assert.Equal(t, "g   ", rowText(s, 2, 2, 6))
}

func TestDrawDialogue_RevealKeepsSpacing(t *testing.T) {
	s := newScreen(t, 20, 5)

	DrawDialogue(Full(s), DefaultTheme, "", "a  b", 3, false)
	r, _, _, _ := s.GetContent(5, 1)
	assert.Equal(t, ' ', r, "b not yet typed")

	DrawDialogue(Full(s), DefaultTheme, "", "a  b", 4, true)
	r, _, _, _ = s.GetContent(5, 1)
	assert.Equal(t, 'b', r)
	assert.Equal(t, "a  b", rowText(s, 1, 2, 6))
}
