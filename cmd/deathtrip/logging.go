package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/deathtrip/config"
)

// setupLogging opens the debug log file; with debug off logs are discarded and the file is nil
// The terminal owns stdout and stderr while running, so nothing is ever logged there
func setupLogging(cfg *config.Config, debug bool) (zerolog.Logger, *os.File, error) {
	if !debug {
		return zerolog.Nop(), nil, nil
	}

	if err := os.MkdirAll(cfg.Log.Dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log dir: %w", err)
	}

	path := cfg.LogFile()
	if err := rotateLog(path, cfg.Log.MaxSizeMB<<20); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log rotate: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log open: %w", err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, f, nil
}

// rotateLog renames path aside with a timestamp once it grows past maxSize
func rotateLog(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() <= maxSize {
		return nil
	}

	ext := filepath.Ext(path)
	rotated := strings.TrimSuffix(path, ext) + "-" + time.Now().Format("20060102-150405") + ext
	return os.Rename(path, rotated)
}
