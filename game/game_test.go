package game

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/deathtrip/app"
	"github.com/lixenwraith/deathtrip/dialogue"
	"github.com/lixenwraith/deathtrip/pixmap"
	"github.com/lixenwraith/deathtrip/story"
	"github.com/lixenwraith/deathtrip/ui"
)

const testStory = `
start = "a"

[characters]
Ann = "images/ann.png"

[[scenes]]
id = "a"
background = "images/a.jpg"
music = "sound/a.wav"
lines = ["Ann: Hi."]
[scenes.decision]
prompt = "Pick one"
choices = [
    { label = "Left", target = "end" },
    { label = "Right", target = "b" },
]

[[scenes]]
id = "b"
next = "end"
lines = ["B."]

[[scenes]]
id = "end"
ending = true
lines = ["Fin."]
`

type fakeNav struct {
	went []app.ScreenID
}

func (n *fakeNav) Go(id app.ScreenID) { n.went = append(n.went, id) }
func (n *fakeNav) Quit()              {}

type fakePlayer struct {
	clicks int
	music  []string
	stops  int
}

func (p *fakePlayer) Click()                 { p.clicks++ }
func (p *fakePlayer) PlayMusic(path string)  { p.music = append(p.music, path) }
func (p *fakePlayer) StopMusic()             { p.stops++ }
func (p *fakePlayer) SetClickVolume(float64) {}
func (p *fakePlayer) SetMusicVolume(float64) {}
func (p *fakePlayer) Close()                 {}

type fixture struct {
	screen *Screen
	term   tcell.SimulationScreen
	nav    *fakeNav
	sound  *fakePlayer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tbl, err := story.Parse([]byte(testStory))
	require.NoError(t, err)
	d, err := dialogue.NewDirector(tbl, dialogue.Config{}, zerolog.Nop())
	require.NoError(t, err)

	term := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, term.Init())
	term.SetSize(80, 24)
	t.Cleanup(term.Fini)

	f := &fixture{term: term, nav: &fakeNav{}, sound: &fakePlayer{}}
	f.screen = New(Deps{
		Nav:      f.nav,
		Director: d,
		Table:    tbl,
		Sound:    f.sound,
		Images:   pixmap.NewCache(zerolog.Nop()),
		Resolve:  func(rel string) string { return "/assets/" + rel },
		Logger:   zerolog.Nop(),
	})
	f.screen.Enter()
	return f
}

func (f *fixture) press(ev tcell.Event) {
	f.screen.HandleEvent(ev)
	f.screen.Update(16 * time.Millisecond)
}

// until presses space each frame until stop reports true
func (f *fixture) until(t *testing.T, stop func() bool) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if stop() {
			return
		}
		f.press(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	}
	t.Fatalf("stuck in state %s", f.screen.director.State())
}

func (f *fixture) text() string {
	f.screen.Draw(ui.Full(f.term))
	w, h := f.term.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := f.term.GetContent(x, y)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (f *fixture) atDecision() bool {
	return f.screen.director.Mode() == dialogue.ModeDecision
}

func TestScreen_EnterStartsStoryAndMusic(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "a", f.screen.director.Scene().ID)
	assert.Equal(t, []string{"/assets/sound/a.wav"}, f.sound.music)

	f.screen.Update(time.Second)
	text := f.text()
	assert.Contains(t, text, "Ann")
	assert.Contains(t, text, "Hi.")

	f.screen.Exit()
	assert.Equal(t, 1, f.sound.stops)
}

func TestScreen_MouseReleaseContinues(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, dialogue.StateTyping, f.screen.director.State())

	f.screen.HandleEvent(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone))
	assert.Equal(t, dialogue.StateTyping, f.screen.director.State(), "press alone does nothing")

	f.screen.HandleEvent(tcell.NewEventMouse(5, 5, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, dialogue.StateLineDone, f.screen.director.State())
	assert.Equal(t, "Hi.", f.screen.director.VisibleText())
}

func TestScreen_NumberKeyChooses(t *testing.T) {
	f := newFixture(t)
	f.until(t, f.atDecision)

	text := f.text()
	assert.Contains(t, text, "Pick one")
	assert.Contains(t, text, "Left")
	assert.Contains(t, text, "Right")
	assert.NotContains(t, text, "Hi.", "dialogue box hidden during a decision")

	f.press(tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone))
	assert.Equal(t, "b", f.screen.director.Scene().ID)
	assert.Equal(t, 1, f.sound.clicks)

	f.until(t, f.screen.director.Ended)
	assert.Contains(t, f.text(), EndText)
	assert.Empty(t, f.nav.went)

	f.press(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, []app.ScreenID{app.ScreenMenu}, f.nav.went)
}

func TestScreen_ClickChooses(t *testing.T) {
	f := newFixture(t)
	f.until(t, f.atDecision)
	f.text()

	rect := f.screen.choices.Buttons[0].Rect
	require.False(t, rect.Empty())
	x, y := rect.X+rect.W/2, rect.Y+rect.H/2
	f.screen.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	f.screen.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))

	assert.Equal(t, "end", f.screen.director.Scene().ID)
	assert.Equal(t, 2, f.sound.clicks, "press and choice")
}

func TestScreen_ContinueIgnoredDuringDecision(t *testing.T) {
	f := newFixture(t)
	f.until(t, f.atDecision)

	f.press(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	f.press(tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone))
	assert.True(t, f.atDecision())
	assert.Equal(t, "a", f.screen.director.Scene().ID)
}

func TestScreen_EscapeReturnsToMenu(t *testing.T) {
	f := newFixture(t)
	f.screen.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.Equal(t, []app.ScreenID{app.ScreenMenu}, f.nav.went)
}

func TestScreen_ReenterRestarts(t *testing.T) {
	f := newFixture(t)
	f.until(t, f.atDecision)
	f.press(tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone))
	f.until(t, f.screen.director.Ended)

	f.screen.Exit()
	f.screen.Enter()
	assert.False(t, f.screen.director.Ended())
	assert.Equal(t, "a", f.screen.director.Scene().ID)
	assert.Nil(t, f.screen.choices)
}
