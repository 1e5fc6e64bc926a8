package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// oscillator sums equal-weight sine partials for a fixed duration
type oscillator struct {
	freqs    []float64
	phases   []float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewOscillator creates a sine oscillator over one or more frequencies
func NewOscillator(duration time.Duration, rate beep.SampleRate, freqs ...float64) beep.Streamer {
	return &oscillator{
		freqs:    freqs,
		phases:   make([]float64, len(freqs)),
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := 0.0
		for k, f := range o.freqs {
			val += math.Sin(2 * math.Pi * o.phases[k])
			o.phases[k] += f / float64(o.rate)
			o.phases[k] -= math.Floor(o.phases[k])
		}
		if len(o.freqs) > 0 {
			val /= float64(len(o.freqs))
		}
		samples[i][0] = val
		samples[i][1] = val
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay multiplies a stream by exp(-t*rate)
type decay struct {
	streamer beep.Streamer
	sr       beep.SampleRate
	speed    float64
	position int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.position) / float64(d.sr)
		env := math.Exp(-t * d.speed)
		samples[i][0] *= env
		samples[i][1] *= env
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume wraps s with linear gain vol; log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setGain(v, vol)
	return v
}

func setGain(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}

// SynthClick builds the fallback button click: a short decaying two-tone blip
func SynthClick(rate beep.SampleRate) *beep.Buffer {
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)

	tone := NewOscillator(60*time.Millisecond, rate, 1800, 900)
	body := &decay{streamer: tone, sr: rate, speed: 60}
	buf.Append(newVolume(body, 0.25))
	return buf
}
