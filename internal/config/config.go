// ABOUTME: Preference persistence for the awake tray utility.
// ABOUTME: Two booleans stored as JSON at a fixed per-user path, written atomically.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorrupt marks an unparsable preferences file. Load still returns
// default preferences alongside it so callers can warn and continue.
var ErrCorrupt = errors.New("preferences file is corrupt")

// Preferences is the persisted user state.
type Preferences struct {
	// EnabledByDefault controls whether the sleep inhibitor is started
	// on launch.
	EnabledByDefault bool `json:"enabled_by_default"`
	// Autostart mirrors whether the user service is registered to start
	// at login.
	Autostart bool `json:"autostart"`
}

// DefaultPreferences returns the fresh-install state.
func DefaultPreferences() Preferences {
	return Preferences{
		EnabledByDefault: true,
		Autostart:        true,
	}
}

// DefaultPath returns the preferences file path, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if configDir := os.Getenv("XDG_CONFIG_HOME"); configDir != "" {
		return filepath.Join(configDir, "awake", "config.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "awake", "config.json"), nil
}

// Load reads preferences from path. A missing file yields defaults with a
// nil error. An unparsable file yields defaults with an error wrapping
// ErrCorrupt; the caller decides whether that is fatal.
func Load(path string) (Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPreferences(), nil
		}
		return DefaultPreferences(), fmt.Errorf("failed to read preferences: %w", err)
	}

	// Decode into a defaults-initialized value so keys absent from the
	// file keep their default values.
	prefs := DefaultPreferences()
	if err := json.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return prefs, nil
}

// Save writes preferences to path via temp file + rename in the same
// directory, so a crash mid-write never replaces the previous valid file
// with a truncated one. The config directory is created if absent.
func Save(path string, prefs Preferences) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Temp file in the same dir — guarantees same filesystem for safe os.Rename
	tmpFile, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // cleanup on any error path

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync preferences: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace preferences file: %w", err)
	}
	return nil
}
