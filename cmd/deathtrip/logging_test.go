package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/deathtrip/config"
)

func logConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Log: config.LogConfig{Level: "info", Dir: filepath.Join(t.TempDir(), "logs"), MaxSizeMB: 1}}
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	cfg := logConfig(t)
	logger, f, err := setupLogging(cfg, false)
	require.NoError(t, err)
	assert.Nil(t, f)

	logger.Error().Msg("dropped")
	_, err = os.Stat(cfg.Log.Dir)
	assert.True(t, os.IsNotExist(err), "no log dir without -debug")
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	cfg := logConfig(t)
	logger, f, err := setupLogging(cfg, true)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()

	logger.Debug().Msg("below level")
	logger.Info().Str("scene", "start").Msg("scene entered")

	data, err := os.ReadFile(cfg.LogFile())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scene":"start"`)
	assert.NotContains(t, string(data), "below level")
}

func TestSetupLogging_Rotation(t *testing.T) {
	cfg := logConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Log.Dir, 0o755))
	require.NoError(t, os.WriteFile(cfg.LogFile(), make([]byte, 1<<20+1), 0o644))

	_, f, err := setupLogging(cfg, true)
	require.NoError(t, err)
	defer f.Close()

	entries, err := os.ReadDir(cfg.Log.Dir)
	require.NoError(t, err)
	rotated := 0
	for _, e := range entries {
		if e.Name() != "deathtrip.log" && strings.HasPrefix(e.Name(), "deathtrip-") && filepath.Ext(e.Name()) == ".log" {
			rotated++
		}
	}
	assert.Equal(t, 1, rotated)

	info, err := os.Stat(cfg.LogFile())
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestRotateLog_SmallFileKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deathtrip.log")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, rotateLog(path, 10))
	assert.FileExists(t, path)

	require.NoError(t, rotateLog(filepath.Join(t.TempDir(), "absent.log"), 10))
}
