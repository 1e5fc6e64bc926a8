// Package game is the story screen: background, speaker portrait, dialogue box and
// decision buttons over a dialogue.Director.
package game

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/deathtrip/app"
	"github.com/lixenwraith/deathtrip/audio"
	"github.com/lixenwraith/deathtrip/dialogue"
	"github.com/lixenwraith/deathtrip/pixmap"
	"github.com/lixenwraith/deathtrip/story"
	"github.com/lixenwraith/deathtrip/ui"
)

const (
	boxHeight   = 7
	choiceW     = 26
	choiceH     = 3
	choiceGap   = 4
	portraitMax = 30
)

// EndText is drawn over the final scene
const EndText = "THE END"

// Deps are the collaborators of the story screen
type Deps struct {
	Nav      app.Navigator
	Director *dialogue.Director
	Table    *story.Table
	Sound    audio.Player
	Images   *pixmap.Cache       // nil draws no images
	Resolve  func(string) string // asset-relative path to file path, nil keeps paths as-is
	Logger   zerolog.Logger
}

// Screen plays the story from the table's start scene on every Enter
type Screen struct {
	nav      app.Navigator
	director *dialogue.Director
	table    *story.Table
	sound    audio.Player
	images   *pixmap.Cache
	resolve  func(string) string
	logger   zerolog.Logger
	theme    ui.Theme

	choices *ui.ButtonList
	pointer ui.Pointer
}

func New(d Deps) *Screen {
	resolve := d.Resolve
	if resolve == nil {
		resolve = func(p string) string { return p }
	}
	s := &Screen{
		nav:      d.Nav,
		director: d.Director,
		table:    d.Table,
		sound:    d.Sound,
		images:   d.Images,
		resolve:  resolve,
		logger:   d.Logger.With().Str("component", "game").Logger(),
		theme:    ui.DefaultTheme,
	}
	s.director.SetHooks(dialogue.Hooks{
		SceneEntered:  s.sceneEntered,
		DecisionShown: s.decisionShown,
		StoryEnded:    s.storyEnded,
	})
	return s
}

func (s *Screen) Enter() {
	s.choices = nil
	if err := s.director.Start(s.table.Start); err != nil {
		s.logger.Error().Err(err).Msg("story start failed")
		s.nav.Go(app.ScreenMenu)
	}
}

func (s *Screen) Exit() {
	s.sound.StopMusic()
}

func (s *Screen) Update(dt time.Duration) {
	s.director.Update(dt)
}

func (s *Screen) sceneEntered(sc *story.Scene) {
	s.choices = nil
	if sc.Music != "" {
		s.sound.PlayMusic(s.resolve(sc.Music))
	}
}

func (s *Screen) decisionShown(d *story.Decision) {
	labels := make([]string, len(d.Choices))
	for i, c := range d.Choices {
		labels[i] = c.Label
	}
	s.choices = ui.NewButtonList(labels...)
}

func (s *Screen) storyEnded(sc *story.Scene) {
	s.logger.Info().Str("ending", sc.ID).Strs("path", s.director.History()).Msg("playthrough finished")
}

func (s *Screen) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		s.handleKey(ev)
	case *tcell.EventMouse:
		s.handleMouse(s.pointer.Translate(ev))
	}
}

func (s *Screen) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		s.nav.Go(app.ScreenMenu)
		return
	}
	if s.director.Ended() {
		if ui.IsContinue(ev) {
			s.nav.Go(app.ScreenMenu)
		}
		return
	}

	if s.director.Mode() == dialogue.ModeDecision && s.choices != nil {
		if ev.Key() == tcell.KeyRune && ev.Rune() >= '1' && ev.Rune() <= '9' {
			s.choose(int(ev.Rune() - '1'))
			return
		}
		if i := s.choices.HandleKey(ev); i >= 0 {
			s.choose(i)
		}
		return
	}

	if ui.IsContinue(ev) {
		s.director.Continue()
	}
}

func (s *Screen) handleMouse(m ui.Mouse) {
	if !s.director.Ended() && s.director.Mode() == dialogue.ModeDecision && s.choices != nil {
		pressed, clicked := s.choices.HandleMouse(m)
		if pressed >= 0 {
			s.sound.Click()
		}
		if clicked >= 0 {
			s.choose(clicked)
		}
		return
	}

	if m.Action != ui.MouseRelease {
		return
	}
	if s.director.Ended() {
		s.nav.Go(app.ScreenMenu)
		return
	}
	s.director.Continue()
}

func (s *Screen) choose(i int) {
	if i < 0 || i >= len(s.choices.Buttons) {
		return
	}
	if err := s.director.Choose(i); err != nil {
		s.logger.Warn().Err(err).Int("choice", i).Msg("choice rejected")
		return
	}
	s.sound.Click()
}

func (s *Screen) Draw(r ui.Region) {
	r.Fill(s.theme.Base())
	sc := s.director.Scene()
	if sc == nil {
		return
	}

	s.drawImage(r, sc.Background, pixmap.Stretch)

	boxY := max(r.H-boxHeight, 0)
	stage := r.Sub(0, 0, r.W, boxY)
	lower := r.Sub(0, boxY, r.W, r.H-boxY)

	switch s.director.Mode() {
	case dialogue.ModeDialogue:
		line := s.director.Line()
		if p := s.table.Portrait(line.Speaker); p != "" {
			pw := min(portraitMax, r.W/3)
			s.drawImage(stage.Sub(stage.W-pw-2, 1, pw, stage.H-1), p, pixmap.Contain)
		}
		cur := s.director.Cursor()
		ui.DrawDialogue(lower.Sub(1, 0, lower.W-2, lower.H), s.theme, line.Speaker, line.Text, cur.Char, cur.Revealed)

	case dialogue.ModeDecision:
		ui.DrawPrompt(lower.Sub(0, 1, lower.W, 1), s.theme, s.director.Prompt())
		if s.choices != nil {
			s.choices.DrawHorizontal(lower.Sub(0, 3, lower.W, choiceH), s.theme, choiceW, choiceH, choiceGap)
		}
	}

	if s.director.Ended() {
		s.drawEnd(stage)
	}
}

func (s *Screen) drawImage(r ui.Region, rel string, mode pixmap.FitMode) {
	if s.images == nil || rel == "" {
		return
	}
	r.Image(s.images.Get(s.resolve(rel), r.W, r.H, mode))
}

func (s *Screen) drawEnd(r ui.Region) {
	box := r.Centered(min(36, r.W), 5)
	box.BoxFilled(ui.Style(s.theme.Accent, s.theme.BoxBg), ui.Style(s.theme.Fg, s.theme.BoxBg))
	box.TextCenter(1, EndText, ui.Style(s.theme.Accent, s.theme.BoxBg).Bold(true))
	box.TextCenter(3, "Enter: back to menu", ui.Style(s.theme.Dim, s.theme.BoxBg))
}
