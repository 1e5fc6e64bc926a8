package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/lixenwraith/deathtrip/dialogue"
)

// DefaultFile is read from the working directory when no -config path is given
const DefaultFile = "deathtrip.toml"

// Config is the application configuration, file values overridden by DEATHTRIP_* env
type Config struct {
	AssetDir        string `toml:"asset_dir" env:"DEATHTRIP_ASSET_DIR" env-default:"."`
	StoryFile       string `toml:"story_file" env:"DEATHTRIP_STORY_FILE" env-default:"story.toml"`
	DialogueFSMFile string `toml:"dialogue_fsm_file" env:"DEATHTRIP_DIALOGUE_FSM_FILE" env-default:"dialogue.toml"`
	SettingsDir     string `toml:"settings_dir" env:"DEATHTRIP_SETTINGS_DIR" env-default:"."`
	FPS             int    `toml:"fps" env:"DEATHTRIP_FPS" env-default:"60"`

	Dialogue DialogueConfig `toml:"dialogue"`
	Fade     FadeConfig     `toml:"fade"`
	Audio    AudioConfig    `toml:"audio"`
	Log      LogConfig      `toml:"log"`
}

// DialogueConfig is dialogue pacing
type DialogueConfig struct {
	CharDelay        time.Duration `toml:"char_delay" env:"DEATHTRIP_CHAR_DELAY" env-default:"40ms"`
	AutoAdvance      time.Duration `toml:"auto_advance" env:"DEATHTRIP_AUTO_ADVANCE" env-default:"0s"`
	InfoLineHold     time.Duration `toml:"info_line_hold" env:"DEATHTRIP_INFO_LINE_HOLD" env-default:"1200ms"`
	InterstitialHold time.Duration `toml:"interstitial_hold" env:"DEATHTRIP_INTERSTITIAL_HOLD" env-default:"1500ms"`
}

// FadeConfig is the overlay alpha step per tick, out of 255
type FadeConfig struct {
	Speed int `toml:"speed" env:"DEATHTRIP_FADE_SPEED" env-default:"5"`
}

type AudioConfig struct {
	Muted      bool `toml:"muted" env:"DEATHTRIP_MUTED" env-default:"false"`
	SampleRate int  `toml:"sample_rate" env:"DEATHTRIP_SAMPLE_RATE" env-default:"44100"`
}

type LogConfig struct {
	Level     string `toml:"level" env:"DEATHTRIP_LOG_LEVEL" env-default:"debug"`
	Dir       string `toml:"dir" env:"DEATHTRIP_LOG_DIR" env-default:"logs"`
	MaxSizeMB int64  `toml:"max_size_mb" env:"DEATHTRIP_LOG_MAX_SIZE_MB" env-default:"10"`
}

// Load reads path when it exists, otherwise environment and defaults only
// An explicit path that is missing is an error; the default file is optional
func Load(path string) (*Config, string, error) {
	var cfg Config
	source := "defaults"

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, "", fmt.Errorf("config %s: %w", path, err)
		}
		source = path
	case explicit || !errors.Is(statErr, os.ErrNotExist):
		return nil, "", fmt.Errorf("config %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, "", fmt.Errorf("config env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, source, nil
}

// Validate rejects values no component can run with
func (c *Config) Validate() error {
	var errs []error
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps %d out of range [1,240]", c.FPS))
	}
	if c.Fade.Speed < 1 || c.Fade.Speed > 255 {
		errs = append(errs, fmt.Errorf("fade speed %d out of range [1,255]", c.Fade.Speed))
	}
	if c.Audio.SampleRate < 8000 {
		errs = append(errs, fmt.Errorf("sample rate %d too low", c.Audio.SampleRate))
	}
	if c.Log.MaxSizeMB < 1 {
		errs = append(errs, fmt.Errorf("log max size %d MB", c.Log.MaxSizeMB))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Timing converts dialogue pacing for the director
func (c *Config) Timing() dialogue.Timing {
	return dialogue.Timing{
		CharDelay:        c.Dialogue.CharDelay,
		AutoAdvance:      c.Dialogue.AutoAdvance,
		InfoLineHold:     c.Dialogue.InfoLineHold,
		InterstitialHold: c.Dialogue.InterstitialHold,
	}
}

// TickInterval is the frame period for FPS
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Asset resolves a path relative to the asset directory
func (c *Config) Asset(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.AssetDir, rel)
}

// LogFile is the debug log path
func (c *Config) LogFile() string {
	return filepath.Join(c.Log.Dir, "deathtrip.log")
}
