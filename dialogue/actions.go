package dialogue

import (
	"time"

	"github.com/lixenwraith/deathtrip/story"
)

// register binds triggers, guards and actions named by the FSM config
func (d *Director) register() {
	m := d.machine

	m.RegisterTrigger("Continue", TriggerContinue)
	m.RegisterTrigger("Choose", TriggerChoose)

	// Guards
	m.RegisterGuard("HasLine", func(d *Director, _ time.Duration) bool {
		return d.scene != nil && !d.exhausted && d.lineIdx < len(d.scene.Lines)
	})
	m.RegisterGuard("LineRevealed", func(d *Director, _ time.Duration) bool {
		return d.tw.Done()
	})
	m.RegisterGuard("AutoAdvanceElapsed", func(d *Director, inState time.Duration) bool {
		if d.scene != nil && d.scene.Info && inState >= d.timing.InfoLineHold {
			return true
		}
		return d.timing.AutoAdvance > 0 && inState >= d.timing.AutoAdvance
	})
	m.RegisterGuard("InterstitialHoldElapsed", func(d *Director, inState time.Duration) bool {
		return inState >= d.timing.InterstitialHold
	})
	m.RegisterGuard("IsEnding", kindGuard(story.KindEnding))
	m.RegisterGuard("IsInterstitial", kindGuard(story.KindInterstitial))
	m.RegisterGuard("HasDecision", kindGuard(story.KindDecision))
	m.RegisterGuard("IsLinear", kindGuard(story.KindLinear))

	// Actions
	m.RegisterAction("EnterScene", (*Director).enterScene)
	m.RegisterAction("BeginLine", (*Director).beginLine)
	m.RegisterAction("RevealTick", func(d *Director, _ map[string]any) {
		d.tw.Advance(d.frameDT)
	})
	m.RegisterAction("RevealAll", func(d *Director, _ map[string]any) {
		d.tw.RevealAll()
	})
	m.RegisterAction("NextLine", (*Director).nextLine)
	m.RegisterAction("QueueNext", func(d *Director, _ map[string]any) {
		if d.scene != nil && d.scene.Next != "" {
			d.pending = d.scene.Next
		}
	})
	m.RegisterAction("ShowDecision", (*Director).showDecision)
	m.RegisterAction("HideDecision", func(d *Director, _ map[string]any) {
		d.decisionShown = false
	})
	m.RegisterAction("FinishStory", (*Director).finishStory)
}

func kindGuard(k story.Kind) func(*Director, time.Duration) bool {
	return func(d *Director, _ time.Duration) bool {
		return d.scene != nil && d.scene.Kind() == k
	}
}

// enterScene consumes the pending scene id and resets the cursor
func (d *Director) enterScene(_ map[string]any) {
	id := d.pending
	d.pending = ""

	next, ok := d.table.Scene(id)
	if !ok {
		// Table validation makes this unreachable with the stock graph
		d.logger.Error().Str("scene", id).Msg("pending scene missing, restarting current scene")
		next = d.scene
		if next == nil {
			next, _ = d.table.Scene(d.table.Start)
		}
	}

	d.scene = next
	d.lineIdx = 0
	d.exhausted = false
	d.decisionShown = false
	d.line = story.Line{}
	d.tw.Load("")
	d.history = append(d.history, next.ID)

	d.logger.Debug().Str("scene", next.ID).Str("kind", next.Kind().String()).Msg("scene entered")
	if d.hooks.SceneEntered != nil {
		d.hooks.SceneEntered(next)
	}
}

func (d *Director) beginLine(_ map[string]any) {
	if d.scene == nil || d.lineIdx >= len(d.scene.Lines) {
		return
	}
	d.line = d.table.ParseLine(d.scene.Lines[d.lineIdx])
	d.tw.Load(d.line.Text)
}

// nextLine moves the cursor forward, flagging exhaustion instead of overrunning
func (d *Director) nextLine(_ map[string]any) {
	if d.scene == nil {
		return
	}
	if d.lineIdx+1 < len(d.scene.Lines) {
		d.lineIdx++
		return
	}
	d.exhausted = true
}

func (d *Director) showDecision(_ map[string]any) {
	d.decisionShown = true
	if d.hooks.DecisionShown != nil && d.scene != nil {
		d.hooks.DecisionShown(d.scene.Decision)
	}
}

func (d *Director) finishStory(_ map[string]any) {
	d.ended = true
	d.logger.Info().Str("scene", d.scene.ID).Msg("story ended")
	if d.hooks.StoryEnded != nil {
		d.hooks.StoryEnded(d.scene)
	}
}
