package fsm

import (
	"fmt"
	"os"
)

// LoadConfigAuto loads FSM config with priority: customPath > defaultPath > embedded
// A missing customPath is an error; a missing defaultPath silently falls back
func LoadConfigAuto[T any](m *Machine[T], customPath, defaultPath, embeddedFallback string) (string, error) {
	// Priority 1: Custom path from CLI / config
	if customPath != "" {
		if err := LoadConfigFromPath(m, customPath); err != nil {
			return "", err
		}
		return customPath, nil
	}

	// Priority 2: Default external config
	if defaultPath != "" && fileExists(defaultPath) {
		if err := LoadConfigFromPath(m, defaultPath); err != nil {
			return "", err
		}
		return defaultPath, nil
	}

	// Priority 3: Embedded fallback
	if err := m.LoadConfig([]byte(embeddedFallback)); err != nil {
		return "", fmt.Errorf("embedded FSM config: %w", err)
	}
	return "embedded", nil
}

// LoadConfigFromPath loads FSM config from an arbitrary file path
func LoadConfigFromPath[T any](m *Machine[T], configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", configPath, err)
	}
	if err := m.LoadConfig(data); err != nil {
		return fmt.Errorf("failed to load FSM config from %s: %w", configPath, err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
