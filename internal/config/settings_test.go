package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settingsVars = []string{
	"DMXSTROBE_PORT", "DMXSTROBE_ADDRESS", "DMXSTROBE_FREQUENCY",
	"DMXSTROBE_DURATION", "DMXSTROBE_FIXTURE", "DMXSTROBE_CONFIG",
}

// clearSettingsEnv unsets every settings variable for the test
func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, k := range settingsVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	clearSettingsEnv(t)

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, PortAuto, s.Port)
	assert.True(t, s.AutoPort())
	assert.Equal(t, 1, s.Address)
	assert.Equal(t, 8.0, s.Frequency)
	assert.Equal(t, 10*time.Second, s.Duration)
}

func TestLoadSettingsFromEnv(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("DMXSTROBE_PORT", "/dev/ttyUSB1")
	t.Setenv("DMXSTROBE_ADDRESS", "17")
	t.Setenv("DMXSTROBE_FREQUENCY", "12.5")
	t.Setenv("DMXSTROBE_DURATION", "1m30s")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB1", s.Port)
	assert.False(t, s.AutoPort())
	assert.Equal(t, 17, s.Address)
	assert.Equal(t, 12.5, s.Frequency)
	assert.Equal(t, 90*time.Second, s.Duration)
}

func TestLoadSettingsDotEnv(t *testing.T) {
	clearSettingsEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DMXSTROBE_ADDRESS=33\nDMXSTROBE_FIXTURE=par\n"), 0600))

	s, err := LoadSettings(envFile)
	require.NoError(t, err)
	assert.Equal(t, 33, s.Address)
	assert.Equal(t, "par", s.Fixture)
}

func TestLoadSettingsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "address zero", key: "DMXSTROBE_ADDRESS", value: "0"},
		{name: "address past universe", key: "DMXSTROBE_ADDRESS", value: "513"},
		{name: "not a number", key: "DMXSTROBE_ADDRESS", value: "one"},
		{name: "zero frequency", key: "DMXSTROBE_FREQUENCY", value: "0"},
		{name: "negative duration", key: "DMXSTROBE_DURATION", value: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearSettingsEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestMergePrefs(t *testing.T) {
	prefs := &StrobePrefs{Frequency: 4, Duration: 3 * time.Second}

	t.Run("prefs fill unset variables", func(t *testing.T) {
		clearSettingsEnv(t)
		s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)

		s.MergePrefs(prefs)
		assert.Equal(t, 4.0, s.Frequency)
		assert.Equal(t, 3*time.Second, s.Duration)
	})

	t.Run("environment wins", func(t *testing.T) {
		clearSettingsEnv(t)
		t.Setenv("DMXSTROBE_FREQUENCY", "10")
		s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)

		s.MergePrefs(prefs)
		assert.Equal(t, 10.0, s.Frequency)
		assert.Equal(t, 3*time.Second, s.Duration)
	})

	t.Run("nil prefs", func(t *testing.T) {
		s := &Settings{Frequency: 8}
		s.MergePrefs(nil)
		assert.Equal(t, 8.0, s.Frequency)
	})
}
