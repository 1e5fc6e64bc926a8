package menu

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/deathtrip/app"
	"github.com/lixenwraith/deathtrip/audio"
	"github.com/lixenwraith/deathtrip/settings"
	"github.com/lixenwraith/deathtrip/ui"
)

// Focus order on the settings screen
const (
	focusClick = iota
	focusMusic
	focusTest
	focusBack
	focusCount
)

// Settings edits the two persisted volumes
type Settings struct {
	nav    app.Navigator
	sound  audio.Player
	store  *settings.Store
	logger zerolog.Logger
	theme  ui.Theme

	click   *ui.Slider
	music   *ui.Slider
	test    *ui.Button
	back    *ui.Button
	focus   int
	pointer ui.Pointer
}

func NewSettings(nav app.Navigator, sound audio.Player, store *settings.Store, logger zerolog.Logger) *Settings {
	s := &Settings{
		nav:    nav,
		sound:  sound,
		store:  store,
		logger: logger.With().Str("component", "settings_screen").Logger(),
		theme:  ui.DefaultTheme,
		click:  ui.NewSlider("Click volume", store.Click()),
		music:  ui.NewSlider("Music volume", store.Music()),
		test:   &ui.Button{Label: "Test"},
		back:   &ui.Button{Label: "Back"},
	}
	s.setFocus(focusClick)
	return s
}

func (s *Settings) Enter() {
	s.click.Value = s.store.Click()
	s.music.Value = s.store.Music()
	s.click.Dragging, s.music.Dragging = false, false
	releaseAll(s.test, s.back)
	s.setFocus(focusClick)
}

// Exit persists unsaved changes
func (s *Settings) Exit() {
	s.save()
}

func (s *Settings) Update(time.Duration) {}

func (s *Settings) setFocus(i int) {
	s.focus = ((i % focusCount) + focusCount) % focusCount
	s.click.Focused = s.focus == focusClick
	s.music.Focused = s.focus == focusMusic
	s.test.Focused = s.focus == focusTest
	s.back.Focused = s.focus == focusBack
}

func (s *Settings) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		s.handleKey(ev)
	case *tcell.EventMouse:
		s.handleMouse(s.pointer.Translate(ev))
	}
}

func (s *Settings) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.sound.Click()
		s.nav.Go(app.ScreenMenu)
		return
	case tcell.KeyUp, tcell.KeyBacktab:
		s.setFocus(s.focus - 1)
		return
	case tcell.KeyDown, tcell.KeyTab:
		s.setFocus(s.focus + 1)
		return
	case tcell.KeyEnter:
		s.activate(s.focus)
		return
	}

	switch s.focus {
	case focusClick:
		if s.click.HandleKey(ev) {
			s.applyClick()
			s.save()
			s.sound.Click()
		}
	case focusMusic:
		if s.music.HandleKey(ev) {
			s.applyMusic()
			s.save()
		}
	}
}

func (s *Settings) handleMouse(m ui.Mouse) {
	if changed, released := s.click.Handle(m); changed || released {
		if changed {
			s.applyClick()
		}
		if released {
			s.save()
			s.sound.Click()
		}
		return
	}
	if changed, released := s.music.Handle(m); changed || released {
		if changed {
			s.applyMusic()
		}
		if released {
			s.save()
		}
		return
	}

	for i, b := range []*ui.Button{s.test, s.back} {
		pressed, clicked := b.Handle(m)
		if pressed {
			s.setFocus(focusTest + i)
			s.sound.Click()
		}
		if clicked && i == 1 {
			s.nav.Go(app.ScreenMenu)
		}
	}
}

// activate runs the focused item's Enter action; the test click is the press sound itself
func (s *Settings) activate(focus int) {
	switch focus {
	case focusTest:
		s.sound.Click()
	case focusBack:
		s.sound.Click()
		s.nav.Go(app.ScreenMenu)
	}
}

func (s *Settings) applyClick() {
	s.store.SetClick(s.click.Value)
	s.sound.SetClickVolume(s.store.Click())
}

func (s *Settings) applyMusic() {
	s.store.SetMusic(s.music.Value)
	s.sound.SetMusicVolume(s.store.Music())
}

func (s *Settings) save() {
	if !s.store.Dirty() {
		return
	}
	if err := s.store.Save(); err != nil {
		s.logger.Warn().Err(err).Msg("volume settings not saved")
	}
}

func (s *Settings) Draw(r ui.Region) {
	r.Fill(s.theme.Base())

	w := min(50, r.W-4)
	panel := r.Centered(w, 15)
	panel.BoxFilled(ui.Style(s.theme.Border, s.theme.Bg), s.theme.Base())
	panel.TextCenter(1, "Settings", ui.Style(s.theme.Accent, s.theme.Bg).Bold(true))

	inner := panel.Inset(2)
	s.click.Draw(inner.Sub(0, 1, inner.W, 2), s.theme)
	s.music.Draw(inner.Sub(0, 4, inner.W, 2), s.theme)

	btnW := min(14, (inner.W-2)/2)
	row := inner.Sub(0, 7, inner.W, buttonH).Centered(btnW*2+2, buttonH)
	s.test.Draw(row.Sub(0, 0, btnW, buttonH), s.theme)
	s.back.Draw(row.Sub(btnW+2, 0, btnW, buttonH), s.theme)

	r.TextCenter(r.H-1, "↑/↓ select · ←/→ adjust · Esc back", s.theme.Hint())
}
