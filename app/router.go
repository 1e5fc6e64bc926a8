package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/deathtrip/ui"
)

// Router owns the current screen and sequences fades between screens
// The swap happens on the tick the fade fully covers the terminal
type Router struct {
	screens map[ScreenID]Screen
	current ScreenID
	pending ScreenID
	fade    *ui.Fade
	quit    bool
	resized []func()
	logger  zerolog.Logger
}

func NewRouter(fade *ui.Fade, logger zerolog.Logger) *Router {
	if fade == nil {
		fade = ui.NewFade(ui.DefaultFadeSpeed)
	}
	return &Router{
		screens: make(map[ScreenID]Screen),
		fade:    fade,
		logger:  logger.With().Str("component", "router").Logger(),
	}
}

// Register adds a screen under id, replacing any previous one
func (r *Router) Register(id ScreenID, s Screen) {
	r.screens[id] = s
}

// OnResize registers fn to run on every terminal resize, before screens see the event
func (r *Router) OnResize(fn func()) {
	r.resized = append(r.resized, fn)
}

// Start enters id without a fade
func (r *Router) Start(id ScreenID) error {
	s, ok := r.screens[id]
	if !ok {
		return fmt.Errorf("router: unknown screen %q", id)
	}
	r.current = id
	s.Enter()
	r.logger.Debug().Str("screen", string(id)).Msg("screen started")
	return nil
}

// Go fades to id; requests during a running fade retarget it
func (r *Router) Go(id ScreenID) {
	if _, ok := r.screens[id]; !ok {
		r.logger.Error().Str("screen", string(id)).Msg("navigation to unknown screen")
		return
	}
	r.pending = id
	if !r.fade.Active() {
		r.fade.Start()
	}
}

// Quit ends the loop after the current tick
func (r *Router) Quit() {
	r.quit = true
}

// Done reports a quit request
func (r *Router) Done() bool {
	return r.quit
}

// Current returns the active screen id
func (r *Router) Current() ScreenID {
	return r.current
}

// Transitioning reports whether a fade is running
func (r *Router) Transitioning() bool {
	return r.fade.Active()
}

// HandleEvent forwards input to the current screen; input is dropped while covering
func (r *Router) HandleEvent(ev tcell.Event) {
	if k, ok := ev.(*tcell.EventKey); ok && k.Key() == tcell.KeyCtrlC {
		r.Quit()
		return
	}
	if _, ok := ev.(*tcell.EventResize); ok {
		for _, fn := range r.resized {
			fn()
		}
	} else if r.fade.Phase() == ui.FadeCover {
		return
	}
	if s := r.screens[r.current]; s != nil {
		s.HandleEvent(ev)
	}
}

// Update advances the fade and the current screen by one tick
func (r *Router) Update(dt time.Duration) {
	if r.fade.Update() {
		r.swap()
	}
	if !r.fade.Active() && r.pending != "" && r.pending != r.current {
		// queued while revealing
		r.fade.Start()
	}
	if r.fade.Phase() == ui.FadeCover {
		return
	}
	if s := r.screens[r.current]; s != nil {
		s.Update(dt)
	}
}

func (r *Router) swap() {
	next := r.pending
	r.pending = ""
	if next == "" || next == r.current {
		return
	}
	if s := r.screens[r.current]; s != nil {
		s.Exit()
	}
	r.logger.Debug().Str("from", string(r.current)).Str("to", string(next)).Msg("screen swap")
	r.current = next
	r.screens[next].Enter()
}

// Draw renders the current screen with the fade on top
func (r *Router) Draw(s tcell.Screen) {
	s.Clear()
	if cur := r.screens[r.current]; cur != nil {
		cur.Draw(ui.Full(s))
	}
	r.fade.Draw(s)
}

// Close exits the current screen
func (r *Router) Close() {
	if s := r.screens[r.current]; s != nil {
		s.Exit()
	}
}
