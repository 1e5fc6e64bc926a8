package menu

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/deathtrip/app"
	"github.com/lixenwraith/deathtrip/audio"
	"github.com/lixenwraith/deathtrip/ui"
)

// InfoText is the about text shown on the info screen
const InfoText = "Deathtrip: Stop friends from driving under influence"

const infoDetail = "Make the right call at every decision. Wrong choices are explained, then you get another try."

// Info shows the about text; any confirm key or click returns to the menu
type Info struct {
	nav     app.Navigator
	sound   audio.Player
	theme   ui.Theme
	pointer ui.Pointer
}

func NewInfo(nav app.Navigator, sound audio.Player) *Info {
	return &Info{nav: nav, sound: sound, theme: ui.DefaultTheme}
}

func (s *Info) Enter()               {}
func (s *Info) Exit()                {}
func (s *Info) Update(time.Duration) {}

func (s *Info) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ui.IsContinue(ev) {
			s.back()
		}
	case *tcell.EventMouse:
		if s.pointer.Translate(ev).Action == ui.MouseRelease {
			s.back()
		}
	}
}

func (s *Info) back() {
	s.sound.Click()
	s.nav.Go(app.ScreenMenu)
}

func (s *Info) Draw(r ui.Region) {
	r.Fill(s.theme.Base())

	w := min(60, r.W-4)
	lines := ui.Wrap(InfoText, w-4)
	lines = append(lines, "")
	lines = append(lines, ui.Wrap(infoDetail, w-4)...)

	box := r.Centered(w, len(lines)+4)
	box.BoxFilled(ui.Style(s.theme.Border, s.theme.BoxBg), ui.Style(s.theme.Fg, s.theme.BoxBg))
	for i, line := range lines {
		style := ui.Style(s.theme.Fg, s.theme.BoxBg)
		if i == 0 {
			style = style.Bold(true)
		}
		box.TextCenter(2+i, line, style)
	}

	r.TextCenter(r.H-1, "Esc / Enter back", s.theme.Hint())
}
