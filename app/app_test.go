package app

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/deathtrip/ui"
)

type fakeScreen struct {
	name     string
	log      *[]string
	events   int
	updates  int
	onUpdate func()
}

func (f *fakeScreen) Enter()                  { *f.log = append(*f.log, "enter "+f.name) }
func (f *fakeScreen) Exit()                   { *f.log = append(*f.log, "exit "+f.name) }
func (f *fakeScreen) HandleEvent(tcell.Event) { f.events++ }
func (f *fakeScreen) Draw(r ui.Region)        { r.Text(0, 0, f.name, tcell.StyleDefault) }
func (f *fakeScreen) Update(time.Duration) {
	f.updates++
	if f.onUpdate != nil {
		f.onUpdate()
	}
}

func newRouter(t *testing.T, speed int) (*Router, *fakeScreen, *fakeScreen, *[]string) {
	t.Helper()
	var log []string
	menu := &fakeScreen{name: "menu", log: &log}
	game := &fakeScreen{name: "game", log: &log}
	r := NewRouter(ui.NewFade(speed), zerolog.Nop())
	r.Register(ScreenMenu, menu)
	r.Register(ScreenGame, game)
	require.NoError(t, r.Start(ScreenMenu))
	return r, menu, game, &log
}

func TestRouter_SwapAtFullCover(t *testing.T) {
	r, menu, game, log := newRouter(t, 100)

	r.Go(ScreenGame)
	assert.True(t, r.Transitioning())

	r.Update(time.Millisecond) // 100
	r.Update(time.Millisecond) // 200
	assert.Equal(t, ScreenMenu, r.Current())
	assert.Zero(t, menu.updates, "screens freeze while covering")

	r.Update(time.Millisecond) // 255, swap
	assert.Equal(t, ScreenGame, r.Current())
	assert.Equal(t, []string{"enter menu", "exit menu", "enter game"}, *log)

	for r.Transitioning() {
		r.Update(time.Millisecond)
	}
	assert.Positive(t, game.updates)
	assert.Equal(t, 3, len(*log), "exactly one swap")
}

func TestRouter_InputDroppedWhileCovering(t *testing.T) {
	r, menu, _, _ := newRouter(t, 100)
	key := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)

	r.HandleEvent(key)
	assert.Equal(t, 1, menu.events)

	r.Go(ScreenGame)
	r.HandleEvent(key)
	assert.Equal(t, 1, menu.events)

	r.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone))
	assert.True(t, r.Done())
}

func TestRouter_ResizeRunsHooks(t *testing.T) {
	r, menu, _, _ := newRouter(t, 100)
	purged := 0
	r.OnResize(func() { purged++ })

	r.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Zero(t, purged)

	r.HandleEvent(tcell.NewEventResize(40, 10))
	assert.Equal(t, 1, purged)
	assert.Equal(t, 2, menu.events)

	r.Go(ScreenGame)
	r.HandleEvent(tcell.NewEventResize(50, 12))
	assert.Equal(t, 2, purged, "runs while covering")
	assert.Equal(t, 3, menu.events)
}

func TestRouter_RetargetDuringReveal(t *testing.T) {
	r, _, _, log := newRouter(t, 255)

	r.Go(ScreenGame)
	r.Update(0) // covered, swap to game
	require.Equal(t, ScreenGame, r.Current())

	r.Go(ScreenMenu) // during reveal
	for i := 0; i < 10 && r.Current() != ScreenMenu; i++ {
		r.Update(0)
	}
	assert.Equal(t, ScreenMenu, r.Current())
	assert.Equal(t, []string{"enter menu", "exit menu", "enter game", "exit game", "enter menu"}, *log)
}

func TestRouter_UnknownScreen(t *testing.T) {
	r, _, _, _ := newRouter(t, 5)
	assert.Error(t, r.Start("nowhere"))
	r.Go("nowhere")
	assert.False(t, r.Transitioning())
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(20, 5)
	return s
}

func TestLoop_RunsUntilQuit(t *testing.T) {
	s := newSimScreen(t)
	r, menu, _, _ := newRouter(t, 5)
	menu.onUpdate = func() {
		if menu.updates == 3 {
			r.Quit()
		}
	}

	loop := NewLoop(s, r, time.Millisecond, zerolog.Nop())
	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not quit")
	}
	s.Fini()

	assert.Equal(t, 3, menu.updates)
}

func TestLoop_ForwardsInput(t *testing.T) {
	s := newSimScreen(t)
	r, menu, _, _ := newRouter(t, 5)
	menu.onUpdate = func() {
		if menu.events > 0 {
			r.Quit()
		}
	}

	loop := NewLoop(s, r, time.Millisecond, zerolog.Nop())
	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("input never reached the screen")
	}
	s.Fini()
}

func TestLoop_RecoversPanic(t *testing.T) {
	s := newSimScreen(t)
	defer s.Fini()
	r, menu, _, _ := newRouter(t, 5)
	menu.onUpdate = func() { panic("boom") }

	err := NewLoop(s, r, time.Millisecond, zerolog.Nop()).Run(context.Background())
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestLoop_ContextCancel(t *testing.T) {
	s := newSimScreen(t)
	defer s.Fini()
	r, _, _, _ := newRouter(t, 5)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.NoError(t, NewLoop(s, r, time.Millisecond, zerolog.Nop()).Run(ctx))
}
