package settings

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

const (
	ClickFile = "config.txt"
	ClickKey  = "volume"
	MusicFile = "music_config.txt"
	MusicKey  = "music_volume"

	DefaultVolume = 1.0
)

var ErrMalformed = errors.New("malformed volume")

func init() {
	// key=value lines, no padding and no blank line after the section
	ini.PrettyFormat = false
	ini.PrettySection = false
}

var loadOptions = ini.LoadOptions{
	SkipUnrecognizableLines: true,
	AllowShadows:            false,
	IgnoreInlineComment:     true,
}

// Clamp limits v to [0, 1]; NaN maps to the default
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultVolume
	}
	return min(max(v, 0), 1)
}

// ReadVolume returns key from path, creating the file with DefaultVolume when absent
// A present but unparsable value returns DefaultVolume with ErrMalformed
func ReadVolume(path, key string) (float64, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := WriteVolume(path, key, DefaultVolume); err != nil {
			return DefaultVolume, err
		}
		return DefaultVolume, nil
	}

	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return DefaultVolume, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	k, err := f.Section(ini.DefaultSection).GetKey(key)
	if err != nil {
		return DefaultVolume, fmt.Errorf("%w: %s: missing %s", ErrMalformed, path, key)
	}
	v, err := k.Float64()
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultVolume, fmt.Errorf("%w: %s: %s=%q", ErrMalformed, path, key, k.String())
	}
	return Clamp(v), nil
}

// WriteVolume replaces path with a single key=value line
func WriteVolume(path, key string, v float64) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("settings dir: %w", err)
		}
	}
	f := ini.Empty(loadOptions)
	f.Section(ini.DefaultSection).Key(key).SetValue(formatVolume(Clamp(v)))
	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func formatVolume(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Store holds both volumes and their backing files
type Store struct {
	clickPath string
	musicPath string
	logger    zerolog.Logger

	click float64
	music float64
	dirty bool
}

// Open loads both volume files from dir, degrading to defaults on any failure
func Open(dir string, logger zerolog.Logger) *Store {
	s := &Store{
		clickPath: filepath.Join(dir, ClickFile),
		musicPath: filepath.Join(dir, MusicFile),
		logger:    logger.With().Str("component", "settings").Logger(),
	}
	s.click = s.load(s.clickPath, ClickKey)
	s.music = s.load(s.musicPath, MusicKey)
	return s
}

func (s *Store) load(path, key string) float64 {
	v, err := ReadVolume(path, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("file", path).Msg("volume fallback to default")
		return DefaultVolume
	}
	s.logger.Debug().Str("file", path).Float64(key, v).Msg("volume loaded")
	return v
}

func (s *Store) Click() float64 { return s.click }
func (s *Store) Music() float64 { return s.music }

func (s *Store) SetClick(v float64) {
	v = Clamp(v)
	if v != s.click {
		s.click = v
		s.dirty = true
	}
}

func (s *Store) SetMusic(v float64) {
	v = Clamp(v)
	if v != s.music {
		s.music = v
		s.dirty = true
	}
}

// Dirty reports unsaved changes
func (s *Store) Dirty() bool {
	return s.dirty
}

// Save writes both files when anything changed
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	err := errors.Join(
		WriteVolume(s.clickPath, ClickKey, s.click),
		WriteVolume(s.musicPath, MusicKey, s.music),
	)
	if err != nil {
		return err
	}
	s.dirty = false
	s.logger.Debug().Float64("volume", s.click).Float64("music_volume", s.music).Msg("settings saved")
	return nil
}
