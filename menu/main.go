package menu

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/deathtrip/app"
	"github.com/lixenwraith/deathtrip/audio"
	"github.com/lixenwraith/deathtrip/pixmap"
	"github.com/lixenwraith/deathtrip/ui"
)

const (
	Title = "DEATHTRIP"

	buttonW   = 24
	buttonH   = 3
	buttonGap = 1
)

// Main menu entries in display order
const (
	ItemNewGame = iota
	ItemSettings
	ItemInfo
	ItemQuit
)

var mainLabels = []string{"New Game", "Settings", "Info", "Quit"}

// Main is the title screen
type Main struct {
	nav        app.Navigator
	sound      audio.Player
	images     *pixmap.Cache
	background string
	theme      ui.Theme

	buttons *ui.ButtonList
	pointer ui.Pointer
}

// NewMain creates the title screen; background is an image path, empty for none
func NewMain(nav app.Navigator, sound audio.Player, images *pixmap.Cache, background string) *Main {
	return &Main{
		nav:        nav,
		sound:      sound,
		images:     images,
		background: background,
		theme:      ui.DefaultTheme,
		buttons:    ui.NewButtonList(mainLabels...),
	}
}

func (m *Main) Enter() {
	releaseAll(m.buttons.Buttons...)
}

func (m *Main) Exit() {}

func (m *Main) Update(time.Duration) {}

func (m *Main) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			m.nav.Quit()
			return
		}
		if i := m.buttons.HandleKey(ev); i >= 0 {
			m.sound.Click()
			m.activate(i)
		}
	case *tcell.EventMouse:
		pressed, clicked := m.buttons.HandleMouse(m.pointer.Translate(ev))
		if pressed >= 0 {
			m.sound.Click()
		}
		if clicked >= 0 {
			m.activate(clicked)
		}
	}
}

func (m *Main) activate(item int) {
	switch item {
	case ItemNewGame:
		m.nav.Go(app.ScreenGame)
	case ItemSettings:
		m.nav.Go(app.ScreenSettings)
	case ItemInfo:
		m.nav.Go(app.ScreenInfo)
	case ItemQuit:
		m.nav.Quit()
	}
}

func (m *Main) Draw(r ui.Region) {
	r.Fill(m.theme.Base())
	if m.images != nil {
		r.Image(m.images.Get(m.background, r.W, r.H, pixmap.Stretch))
	}

	listH := len(m.buttons.Buttons)*buttonH + (len(m.buttons.Buttons)-1)*buttonGap
	top := max((r.H-listH-2)/2, 0)
	r.TextCenter(top, Title, ui.Style(m.theme.Accent, m.theme.Bg).Bold(true))

	m.buttons.DrawVertical(r.Sub(0, top+2, r.W, listH), m.theme, buttonW, buttonH, buttonGap)

	r.TextCenter(r.H-1, "↑/↓ select · Enter confirm · q quit", m.theme.Hint())
}

// releaseAll clears transient press and hover state carried over from a previous visit
func releaseAll(buttons ...*ui.Button) {
	for _, b := range buttons {
		b.Pressed, b.Hovered = false, false
	}
}
