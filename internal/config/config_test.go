package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	prefs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(), prefs)
	assert.True(t, prefs.EnabledByDefault)
	assert.True(t, prefs.Autostart)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		prefs Preferences
	}{
		{"both enabled", Preferences{EnabledByDefault: true, Autostart: true}},
		{"both disabled", Preferences{EnabledByDefault: false, Autostart: false}},
		{"inhibit only", Preferences{EnabledByDefault: true, Autostart: false}},
		{"autostart only", Preferences{EnabledByDefault: false, Autostart: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, Save(path, tt.prefs))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.prefs, loaded)
		})
	}
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated object", `{"enabled_by_default": tr`},
		{"not json", "enabled_by_default = true"},
		{"wrong type", `{"enabled_by_default": "yes"}`},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			prefs, err := Load(path)
			assert.ErrorIs(t, err, ErrCorrupt)
			assert.Equal(t, DefaultPreferences(), prefs)
		})
	}
}

func TestLoadMissingKeysKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"enabled_by_default": false}`), 0600))

	prefs, err := Load(path)
	require.NoError(t, err)
	assert.False(t, prefs.EnabledByDefault)
	assert.True(t, prefs.Autostart, "key absent from file keeps its default")
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"enabled_by_default": false, "autostart": false, "theme": "dark"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	prefs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Preferences{EnabledByDefault: false, Autostart: false}, prefs)
}

func TestSaveCreatesConfigDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awake", "nested", "config.json")

	require.NoError(t, Save(path, DefaultPreferences()))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveReplacesPreviousFileAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	require.NoError(t, Save(path, Preferences{EnabledByDefault: true, Autostart: true}))
	require.NoError(t, Save(path, Preferences{EnabledByDefault: false, Autostart: true}))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.False(t, loaded.EnabledByDefault)

	// No temp files left behind after the swap.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file: %s", e.Name())
	}
}

func TestSaveWritesJSONKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, Save(path, Preferences{EnabledByDefault: false, Autostart: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"enabled_by_default": false`)
	assert.Contains(t, string(data), `"autostart": true`)
}

func TestDefaultPathHonorsXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "awake", "config.json"), path)
}
