package dialogue

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// Typewriter reveals a line one grapheme cluster per delay
type Typewriter struct {
	graphemes []string
	shown     int
	elapsed   time.Duration
	delay     time.Duration
}

// NewTypewriter creates a typewriter with a fixed per-grapheme delay
func NewTypewriter(delay time.Duration) *Typewriter {
	if delay <= 0 {
		delay = DefaultCharDelay
	}
	return &Typewriter{delay: delay}
}

// Load replaces the line and restarts the reveal
func (tw *Typewriter) Load(text string) {
	tw.graphemes = tw.graphemes[:0]
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		tw.graphemes = append(tw.graphemes, g.Str())
	}
	tw.shown = 0
	tw.elapsed = 0
}

// Advance accumulates dt and reveals every grapheme whose delay has passed
// Returns the number of graphemes revealed by this call
func (tw *Typewriter) Advance(dt time.Duration) int {
	if tw.Done() {
		tw.elapsed = 0
		return 0
	}

	tw.elapsed += dt
	revealed := 0
	for tw.elapsed >= tw.delay && tw.shown < len(tw.graphemes) {
		tw.elapsed -= tw.delay
		tw.shown++
		revealed++
	}
	if tw.Done() {
		tw.elapsed = 0
	}
	return revealed
}

// RevealAll skips to the end of the line
func (tw *Typewriter) RevealAll() {
	tw.shown = len(tw.graphemes)
	tw.elapsed = 0
}

// Done reports whether the whole line is visible
func (tw *Typewriter) Done() bool {
	return tw.shown >= len(tw.graphemes)
}

// Visible returns the revealed prefix
func (tw *Typewriter) Visible() string {
	return strings.Join(tw.graphemes[:tw.shown], "")
}

// Shown returns the revealed grapheme count
func (tw *Typewriter) Shown() int {
	return tw.shown
}

// Len returns the grapheme count of the loaded line
func (tw *Typewriter) Len() int {
	return len(tw.graphemes)
}

// Elapsed returns time accumulated toward the next grapheme
func (tw *Typewriter) Elapsed() time.Duration {
	return tw.elapsed
}

// Delay returns the per-grapheme delay
func (tw *Typewriter) Delay() time.Duration {
	return tw.delay
}
