package audio

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"
)

const DefaultSampleRate = 44100

// Player is the audio surface screens use
type Player interface {
	Click()
	PlayMusic(path string)
	StopMusic()
	SetClickVolume(v float64)
	SetMusicVolume(v float64)
	Close()
}

// Silent discards everything
type Silent struct{}

func (Silent) Click()                 {}
func (Silent) PlayMusic(string)       {}
func (Silent) StopMusic()             {}
func (Silent) SetClickVolume(float64) {}
func (Silent) SetMusicVolume(float64) {}
func (Silent) Close()                 {}

// Config for the beep-backed player
type Config struct {
	SampleRate  int
	ClickFile   string // wav, synthesized when missing
	ClickVolume float64
	MusicVolume float64
}

// SoundManager plays button clicks and looped background music through beep's speaker
type SoundManager struct {
	mu     sync.Mutex
	logger zerolog.Logger
	rate   beep.SampleRate
	cfg    Config

	mixer *beep.Mixer
	click *beep.Buffer

	clickVolume float64
	musicVolume float64

	music     *beep.Ctrl
	musicGain *effects.Volume
	musicFile *os.File
	musicPath string

	failed      map[string]bool
	initialized bool
}

// NewSoundManager creates an uninitialized manager; every method is a no-op until Initialize
func NewSoundManager(cfg Config, logger zerolog.Logger) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	return &SoundManager{
		logger:      logger.With().Str("component", "audio").Logger(),
		rate:        beep.SampleRate(cfg.SampleRate),
		cfg:         cfg,
		mixer:       &beep.Mixer{},
		clickVolume: cfg.ClickVolume,
		musicVolume: cfg.MusicVolume,
		failed:      make(map[string]bool),
	}
}

// Initialize opens the speaker and loads the click sound
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	click, err := LoadBuffer(sm.cfg.ClickFile, sm.rate)
	if err != nil {
		sm.logger.Warn().Err(err).Str("file", sm.cfg.ClickFile).Msg("click sound unavailable, using synthesized click")
		click = SynthClick(sm.rate)
	}
	sm.click = click

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Info().Int("rate", int(sm.rate)).Msg("audio initialized")
	return nil
}

// Click plays the button sound at the click volume
func (sm *SoundManager) Click() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.click == nil || sm.clickVolume <= 0 {
		return
	}

	s := newVolume(sm.click.Streamer(0, sm.click.Len()), sm.clickVolume)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayMusic loops path; the same path already playing is left alone
func (sm *SoundManager) PlayMusic(path string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || path == sm.musicPath {
		return
	}
	sm.stopMusicLocked()
	if path == "" || sm.failed[path] {
		return
	}

	f, stream, err := openLoop(path, sm.rate)
	if err != nil {
		sm.failed[path] = true
		sm.logger.Warn().Err(err).Str("file", path).Msg("music unavailable")
		return
	}

	sm.musicFile = f
	sm.musicPath = path
	sm.musicGain = newVolume(stream, sm.musicVolume)
	sm.music = &beep.Ctrl{Streamer: sm.musicGain}

	speaker.Lock()
	sm.mixer.Add(sm.music)
	speaker.Unlock()
	sm.logger.Debug().Str("file", path).Msg("music started")
}

// StopMusic stops the current track
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.stopMusicLocked()
}

func (sm *SoundManager) stopMusicLocked() {
	if sm.music == nil {
		return
	}
	speaker.Lock()
	// Mixer drops a Ctrl whose streamer is nil on the next pull
	sm.music.Streamer = nil
	speaker.Unlock()

	if sm.musicFile != nil {
		sm.musicFile.Close()
	}
	sm.music = nil
	sm.musicGain = nil
	sm.musicFile = nil
	sm.musicPath = ""
}

func (sm *SoundManager) SetClickVolume(v float64) {
	sm.mu.Lock()
	sm.clickVolume = v
	sm.mu.Unlock()
}

// SetMusicVolume applies immediately to the playing track
func (sm *SoundManager) SetMusicVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.musicVolume = v
	if sm.musicGain == nil {
		return
	}
	speaker.Lock()
	setGain(sm.musicGain, v)
	speaker.Unlock()
}

// Close stops all sounds; beep has no speaker close so the mixer is cleared instead
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.stopMusicLocked()
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// LoadBuffer decodes a wav file fully into memory at rate
func LoadBuffer(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	if path == "" {
		return nil, errors.New("no file")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer stream.Close()

	var src beep.Streamer = stream
	if format.SampleRate != rate {
		src = beep.Resample(4, format.SampleRate, rate, stream)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: format.NumChannels, Precision: format.Precision})
	buf.Append(src)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf, nil
}

// openLoop decodes a wav file as an endless stream at rate; caller closes the file
func openLoop(path string, rate beep.SampleRate) (*os.File, beep.Streamer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if stream.Len() == 0 {
		f.Close()
		return nil, nil, fmt.Errorf("%s: empty track", path)
	}

	var s beep.Streamer = beep.Loop(-1, stream)
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, s)
	}
	return f, s, nil
}
