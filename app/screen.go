package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/deathtrip/ui"
)

// ScreenID names a registered screen
type ScreenID string

const (
	ScreenMenu     ScreenID = "menu"
	ScreenInfo     ScreenID = "info"
	ScreenSettings ScreenID = "settings"
	ScreenGame     ScreenID = "game"
)

// Screen is one full-terminal mode; all methods run on the loop goroutine
type Screen interface {
	Enter()
	Exit()
	HandleEvent(ev tcell.Event)
	Update(dt time.Duration)
	Draw(r ui.Region)
}

// Navigator is what screens use to leave
type Navigator interface {
	Go(id ScreenID)
	Quit()
}
