package ui

import "github.com/gdamore/tcell/v2"

// Theme defines semantic colors for widgets
type Theme struct {
	Bg     tcell.Color
	Fg     tcell.Color
	Dim    tcell.Color
	Accent tcell.Color
	Border tcell.Color

	ButtonBg  tcell.Color
	ButtonFg  tcell.Color
	HoverBg   tcell.Color
	FocusBg   tcell.Color
	PressedBg tcell.Color

	BoxBg     tcell.Color
	SpeakerFg tcell.Color
	TrackFg   tcell.Color
	FillFg    tcell.Color
}

// DefaultTheme is the dark palette used by every screen
var DefaultTheme = Theme{
	Bg:        tcell.NewRGBColor(8, 8, 12),
	Fg:        tcell.NewRGBColor(235, 235, 235),
	Dim:       tcell.NewRGBColor(140, 140, 150),
	Accent:    tcell.NewRGBColor(220, 70, 70),
	Border:    tcell.NewRGBColor(200, 200, 200),
	ButtonBg:  tcell.NewRGBColor(90, 90, 100),
	ButtonFg:  tcell.NewRGBColor(255, 255, 255),
	HoverBg:   tcell.NewRGBColor(120, 120, 135),
	FocusBg:   tcell.NewRGBColor(70, 90, 130),
	PressedBg: tcell.NewRGBColor(60, 60, 70),
	BoxBg:     tcell.NewRGBColor(15, 15, 22),
	SpeakerFg: tcell.NewRGBColor(255, 200, 90),
	TrackFg:   tcell.NewRGBColor(110, 110, 120),
	FillFg:    tcell.NewRGBColor(220, 220, 220),
}

// Style builds a plain style from fg on bg
func Style(fg, bg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(bg)
}

func (t Theme) Base() tcell.Style { return Style(t.Fg, t.Bg) }
func (t Theme) Hint() tcell.Style { return Style(t.Dim, t.Bg) }
