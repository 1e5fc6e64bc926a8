package story

import "errors"

var (
	ErrNoScenes         = errors.New("story defines no scenes")
	ErrNoStart          = errors.New("story start scene missing")
	ErrDuplicateScene   = errors.New("duplicate scene id")
	ErrUnknownScene     = errors.New("unknown scene id")
	ErrInvalidDecision  = errors.New("decision must offer exactly two choices")
	ErrAmbiguousOutflow = errors.New("scene declares more than one outflow")
	ErrMissingNext      = errors.New("interstitial scene has no next scene")
	ErrNoOutflow        = errors.New("scene has no decision, next scene or ending")
)

// Kind classifies a scene by what happens after its dialogue is exhausted
type Kind int

const (
	KindInvalid      Kind = iota
	KindDecision          // two buttons, player picks the successor
	KindLinear            // continues to Next without input
	KindInterstitial      // informational, auto-advances to Next
	KindEnding            // story complete
)

var kindNames = [...]string{"invalid", "decision", "linear", "interstitial", "ending"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Document is the on-disk story layout
type Document struct {
	Title      string            `toml:"title"`
	Start      string            `toml:"start"`
	Characters map[string]string `toml:"characters"` // speaker name -> portrait path, empty for none
	Scenes     []Scene           `toml:"scenes"`
}

// Scene is a named unit of background, dialogue lines and outflow
type Scene struct {
	ID         string    `toml:"id"`
	Background string    `toml:"background"`
	Music      string    `toml:"music,omitempty"`
	Lines      []string  `toml:"lines"`
	Decision   *Decision `toml:"decision,omitempty"`
	Next       string    `toml:"next,omitempty"`
	Info       bool      `toml:"info,omitempty"`
	Ending     bool      `toml:"ending,omitempty"`
}

// Decision is a binary branch shown after the dialogue is exhausted
type Decision struct {
	Prompt  string   `toml:"prompt,omitempty"`
	Choices []Choice `toml:"choices"`
}

// Choice is one decision button
type Choice struct {
	Label  string `toml:"label"`
	Target string `toml:"target"`
}

// Line is a raw dialogue line split into speaker tag and text
type Line struct {
	Speaker string // empty for narration
	Text    string
}

// Kind reports the scene's outflow kind, KindInvalid when none or conflicting
func (s *Scene) Kind() Kind {
	outflows := 0
	kind := KindInvalid
	if s.Ending {
		outflows++
		kind = KindEnding
	}
	if s.Decision != nil {
		outflows++
		kind = KindDecision
	}
	if s.Info {
		outflows++
		kind = KindInterstitial
	} else if s.Next != "" {
		outflows++
		kind = KindLinear
	}
	if outflows != 1 {
		return KindInvalid
	}
	return kind
}

// Successors lists scene ids this scene can lead to, in button order
func (s *Scene) Successors() []string {
	switch {
	case s.Decision != nil:
		out := make([]string, 0, len(s.Decision.Choices))
		for _, c := range s.Decision.Choices {
			out = append(out, c.Target)
		}
		return out
	case s.Next != "":
		return []string{s.Next}
	}
	return nil
}
