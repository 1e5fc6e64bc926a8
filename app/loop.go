package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

// maxFrameDT caps the step after a stall so timers do not jump
const maxFrameDT = 100 * time.Millisecond

// Loop drives a router at a fixed tick; one goroutine polls input into a channel
type Loop struct {
	screen   tcell.Screen
	router   *Router
	interval time.Duration
	logger   zerolog.Logger
}

func NewLoop(screen tcell.Screen, router *Router, interval time.Duration, logger zerolog.Logger) *Loop {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Loop{
		screen:   screen,
		router:   router,
		interval: interval,
		logger:   logger.With().Str("component", "loop").Logger(),
	}
}

// PanicError carries a recovered panic and its stack
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
}

// Run blocks until the router quits, ctx is cancelled, or a panic is recovered
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 100)
	pollErr := make(chan error, 1)
	go l.poll(ctx, events, pollErr)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := time.Now()
	l.router.Draw(l.screen)
	l.screen.Show()

	for !l.router.Done() {
		select {
		case <-ctx.Done():
			return nil

		case err := <-pollErr:
			return err

		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				l.screen.Sync()
			}
			l.router.HandleEvent(ev)

		case now := <-ticker.C:
			dt := min(now.Sub(last), maxFrameDT)
			last = now

			l.router.Update(dt)
			l.router.Draw(l.screen)
			l.screen.Show()
		}
	}
	l.logger.Debug().Msg("loop finished")
	return nil
}

// poll forwards terminal events until the screen is finalized or ctx ends
func (l *Loop) poll(ctx context.Context, events chan<- tcell.Event, errs chan<- error) {
	defer func() {
		if r := recover(); r != nil {
			errs <- &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	for {
		ev := l.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
