package dialogue

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/deathtrip/asset"
	"github.com/lixenwraith/deathtrip/engine/fsm"
	"github.com/lixenwraith/deathtrip/story"
)

var (
	ErrNoDecision  = errors.New("no decision is active")
	ErrChoiceRange = errors.New("choice index out of range")
	ErrNotStarted  = errors.New("director not started")
)

// Triggers routed into the dialogue FSM
const (
	TriggerContinue fsm.Trigger = iota + 1
	TriggerChoose
)

// State names of the dialogue FSM
type State string

const (
	StateEntering         State = "Entering"
	StateTyping           State = "Typing"
	StateLineDone         State = "LineDone"
	StateAdvancing        State = "Advancing"
	StateExhausted        State = "Exhausted"
	StateAwaitingDecision State = "AwaitingDecision"
	StateInterstitial     State = "Interstitial"
	StateEnded            State = "Ended"
)

// Mode is what the screen shows: at most one of dialogue box and decision buttons
type Mode int

const (
	ModeNone Mode = iota
	ModeDialogue
	ModeDecision
)

// Cursor is the dialogue position within the current scene
type Cursor struct {
	Line     int           // index into the scene's lines
	Char     int           // graphemes revealed
	Elapsed  time.Duration // accumulated toward the next grapheme
	Revealed bool          // line fully visible
}

// Hooks are optional callbacks fired from FSM actions
type Hooks struct {
	SceneEntered  func(*story.Scene)
	DecisionShown func(*story.Decision)
	StoryEnded    func(*story.Scene)
}

// Config selects pacing and the FSM graph source
type Config struct {
	Timing         Timing
	FSMPath        string // explicit override, must exist when set
	FSMDefaultPath string // used when present on disk, else embedded
}

// Director drives scene playback: typewriter, continuation and decisions
type Director struct {
	table   *story.Table
	timing  Timing
	logger  zerolog.Logger
	machine *fsm.Machine[*Director]
	hooks   Hooks

	scene         *story.Scene
	line          story.Line
	lineIdx       int
	exhausted     bool
	pending       string
	decisionShown bool
	ended         bool
	started       bool
	frameDT       time.Duration
	tw            *Typewriter
	history       []string
}

// NewDirector builds the dialogue FSM over a validated scene table
func NewDirector(table *story.Table, cfg Config, logger zerolog.Logger) (*Director, error) {
	if table == nil {
		return nil, fmt.Errorf("dialogue: nil scene table")
	}
	timing := cfg.Timing.Normalized()

	d := &Director{
		table:   table,
		timing:  timing,
		logger:  logger.With().Str("component", "dialogue").Logger(),
		machine: fsm.NewMachine[*Director](),
		tw:      NewTypewriter(timing.CharDelay),
	}
	d.register()

	source, err := fsm.LoadConfigAuto(d.machine, cfg.FSMPath, cfg.FSMDefaultPath, asset.DefaultDialogueFSMConfig)
	if err != nil {
		return nil, fmt.Errorf("dialogue: %w", err)
	}
	d.logger.Debug().Str("source", source).Dur("char_delay", timing.CharDelay).Msg("dialogue FSM loaded")
	return d, nil
}

// SetHooks replaces the callbacks
func (d *Director) SetHooks(h Hooks) {
	d.hooks = h
}

// Start begins playback at sceneID, resetting any scene in progress
func (d *Director) Start(sceneID string) error {
	if _, ok := d.table.Scene(sceneID); !ok {
		return fmt.Errorf("dialogue start '%s': %w", sceneID, story.ErrUnknownScene)
	}

	d.pending = sceneID
	d.ended = false
	d.decisionShown = false
	d.history = d.history[:0]

	if !d.started {
		d.started = true
		return d.machine.Init(d)
	}
	return d.machine.Reset(d)
}

// Update advances timers by dt
func (d *Director) Update(dt time.Duration) {
	if !d.started {
		return
	}
	d.frameDT = dt
	d.machine.Update(d, dt)
	d.frameDT = 0
}

// Continue is the player's continuation signal (click, space, enter)
// Returns false when the current state ignores it, e.g. while a decision is active
func (d *Director) Continue() bool {
	if !d.started {
		return false
	}
	return d.machine.HandleEvent(d, TriggerContinue)
}

// Choose selects decision button index and enters its target scene
func (d *Director) Choose(index int) error {
	if !d.started {
		return ErrNotStarted
	}
	if !d.decisionShown || d.scene == nil || d.scene.Decision == nil {
		return ErrNoDecision
	}
	choices := d.scene.Decision.Choices
	if index < 0 || index >= len(choices) {
		return fmt.Errorf("%w: %d of %d", ErrChoiceRange, index, len(choices))
	}

	choice := choices[index]
	d.logger.Info().Str("scene", d.scene.ID).Str("choice", choice.Label).Str("target", choice.Target).Msg("decision made")

	d.pending = choice.Target
	if !d.machine.HandleEvent(d, TriggerChoose) {
		d.pending = ""
		return fmt.Errorf("%w: state %s", ErrNoDecision, d.machine.StateName())
	}
	return nil
}

// State returns the active FSM state
func (d *Director) State() State {
	return State(d.machine.StateName())
}

// Mode returns which dialogue surface is visible
func (d *Director) Mode() Mode {
	switch {
	case !d.started || d.scene == nil:
		return ModeNone
	case d.decisionShown:
		return ModeDecision
	case len(d.scene.Lines) > 0:
		return ModeDialogue
	}
	return ModeNone
}

// Scene returns the current scene, nil before Start
func (d *Director) Scene() *story.Scene {
	return d.scene
}

// Line returns the parsed current line
func (d *Director) Line() story.Line {
	return d.line
}

// VisibleText returns the revealed part of the current line
func (d *Director) VisibleText() string {
	return d.tw.Visible()
}

// Cursor returns the dialogue cursor
func (d *Director) Cursor() Cursor {
	return Cursor{
		Line:     d.lineIdx,
		Char:     d.tw.Shown(),
		Elapsed:  d.tw.Elapsed(),
		Revealed: d.tw.Done(),
	}
}

// Choices returns the active decision buttons, nil unless a decision is shown
func (d *Director) Choices() []story.Choice {
	if !d.decisionShown || d.scene == nil || d.scene.Decision == nil {
		return nil
	}
	return d.scene.Decision.Choices
}

// Prompt returns the active decision prompt
func (d *Director) Prompt() string {
	if !d.decisionShown || d.scene == nil || d.scene.Decision == nil {
		return ""
	}
	return d.scene.Decision.Prompt
}

// Ended reports whether an ending scene has finished
func (d *Director) Ended() bool {
	return d.ended
}

// History returns scene ids entered since Start, in order
func (d *Director) History() []string {
	out := make([]string, len(d.history))
	copy(out, d.history)
	return out
}

// Timing returns the normalized pacing in use
func (d *Director) Timing() Timing {
	return d.timing
}
