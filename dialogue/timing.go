package dialogue

import "time"

const (
	DefaultCharDelay        = 40 * time.Millisecond
	DefaultInfoLineHold     = 1200 * time.Millisecond
	DefaultInterstitialHold = 1500 * time.Millisecond

	MinCharDelay = 10 * time.Millisecond
	MaxCharDelay = 200 * time.Millisecond
)

// Timing holds the dialogue pacing parameters
type Timing struct {
	CharDelay        time.Duration // per grapheme while typing
	AutoAdvance      time.Duration // LINE_DONE wait before auto-continue, 0 waits for input
	InfoLineHold     time.Duration // LINE_DONE wait inside interstitial scenes
	InterstitialHold time.Duration // wait after an interstitial's last line before moving on
}

// DefaultTiming returns stock pacing
func DefaultTiming() Timing {
	return Timing{
		CharDelay:        DefaultCharDelay,
		InfoLineHold:     DefaultInfoLineHold,
		InterstitialHold: DefaultInterstitialHold,
	}
}

// Normalized clamps CharDelay into range and zeroes negative waits
func (t Timing) Normalized() Timing {
	switch {
	case t.CharDelay == 0:
		t.CharDelay = DefaultCharDelay
	case t.CharDelay < MinCharDelay:
		t.CharDelay = MinCharDelay
	case t.CharDelay > MaxCharDelay:
		t.CharDelay = MaxCharDelay
	}
	t.AutoAdvance = max(t.AutoAdvance, 0)
	if t.InfoLineHold <= 0 {
		t.InfoLineHold = DefaultInfoLineHold
	}
	if t.InterstitialHold <= 0 {
		t.InterstitialHold = DefaultInterstitialHold
	}
	return t
}
