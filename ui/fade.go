package ui

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/deathtrip/pixmap"
)

const (
	FadeOpaque       = 255
	DefaultFadeSpeed = 5
)

// FadePhase of a two-part fade
type FadePhase uint8

const (
	FadeIdle   FadePhase = iota
	FadeCover            // clear to colour
	FadeReveal           // colour to clear
)

// Fade covers the screen with a colour, then reveals it again
type Fade struct {
	Speed int
	Color colorful.Color

	alpha int
	phase FadePhase
}

func NewFade(speed int) *Fade {
	if speed <= 0 {
		speed = DefaultFadeSpeed
	}
	return &Fade{Speed: speed}
}

// Start restarts from clear
func (f *Fade) Start() {
	f.alpha = 0
	f.phase = FadeCover
}

// Update steps one tick; covered is true only on the tick the screen becomes fully covered
func (f *Fade) Update() (covered bool) {
	switch f.phase {
	case FadeCover:
		f.alpha += f.Speed
		if f.alpha >= FadeOpaque {
			f.alpha = FadeOpaque
			f.phase = FadeReveal
			return true
		}
	case FadeReveal:
		f.alpha -= f.Speed
		if f.alpha <= 0 {
			f.alpha = 0
			f.phase = FadeIdle
		}
	}
	return false
}

func (f *Fade) Active() bool     { return f.phase != FadeIdle }
func (f *Fade) Phase() FadePhase { return f.phase }
func (f *Fade) Alpha() int       { return f.alpha }

// Draw blends every cell on s toward the fade colour by the current alpha
func (f *Fade) Draw(s tcell.Screen) {
	if f.alpha <= 0 {
		return
	}
	t := float64(f.alpha) / FadeOpaque
	w, h := s.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, comb, style, _ := s.GetContent(x, y)
			fg, bg, attr := style.Decompose()
			nfg := pixmap.ToTcell(pixmap.FromTcell(fg).BlendRgb(f.Color, t))
			nbg := pixmap.ToTcell(pixmap.FromTcell(bg).BlendRgb(f.Color, t))
			s.SetContent(x, y, r, comb, tcell.StyleDefault.Foreground(nfg).Background(nbg).Attributes(attr))
		}
	}
}
