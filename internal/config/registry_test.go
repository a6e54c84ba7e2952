package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/dmxstrobe/internal/fixture"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout test")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/dmxstrobe", dir)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
}

func TestLoadRegistryFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	r, err := LoadRegistryFile(path)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, r.Version)
	assert.Empty(t, r.Fixtures)
	assert.Equal(t, path, r.Path())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	r := DefaultRegistry()
	r.Port = "/dev/ttyUSB0"
	r.SetFixture("strip", 7, "rgb3")
	r.Layouts["rgb3"] = &LayoutConfig{Controls: map[string]int{"red": 0, "green": 1, "blue": 2}}
	require.NoError(t, r.SaveTo(path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# dmxstrobe configuration file")
	assert.Contains(t, string(data), "duration: 10s")

	loaded, err := LoadRegistryFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", loaded.Port)
	assert.Equal(t, []string{"par", "strip"}, loaded.FixtureNames())
	assert.Equal(t, 8.0, loaded.Strobe.Frequency)
	assert.Equal(t, 10*time.Second, loaded.Strobe.Duration)

	strip, err := loaded.Patch("strip")
	require.NoError(t, err)
	assert.Equal(t, 7, strip.Base)
	assert.Equal(t, 3, strip.Layout.Footprint)
	assert.False(t, strip.Layout.Has(fixture.Dimmer))
}

func TestLoadRegistryFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "version: [1"},
		{name: "wrong version", content: "version: 2\n"},
		{name: "address past universe", content: "version: 1\nfixtures:\n  par:\n    address: 510\n"},
		{name: "unknown layout", content: "version: 1\nfixtures:\n  par:\n    address: 1\n    layout: movinghead\n"},
		{name: "unknown control", content: "version: 1\nlayouts:\n  x:\n    controls: {pan: 0}\nfixtures:\n  par:\n    address: 1\n    layout: x\n"},
		{name: "bad color", content: "version: 1\nfixtures:\n  par:\n    address: 1\n    color: ultraviolet\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := LoadRegistryFile(path)
			assert.Error(t, err)
		})
	}
}

func TestRegistryPatch(t *testing.T) {
	r := NewRegistry()
	r.SetFixture("par", 10, "")

	p, err := r.Patch("par")
	require.NoError(t, err)
	assert.Equal(t, "par", p.Name)
	assert.Equal(t, fixture.Par6, p.Layout)
	assert.Equal(t, 10, p.Base)

	_, err = r.Patch("missing")
	assert.Error(t, err)
}

func TestCustomLayoutShadowsBuiltin(t *testing.T) {
	r := NewRegistry()
	r.Layouts["par6"] = &LayoutConfig{Controls: map[string]int{"dimmer": 0, "red": 1, "green": 2, "blue": 3}}

	l, err := r.Layout("par6")
	require.NoError(t, err)
	assert.Equal(t, 4, l.Footprint)
}

func TestLoadRegistryCachedUntilReload(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { _, _ = ReloadRegistry() })

	first, err := ReloadRegistry()
	require.NoError(t, err)
	assert.Empty(t, first.Fixtures)

	r := DefaultRegistry()
	require.NoError(t, r.SaveTo(first.Path()))

	cached, err := LoadRegistry()
	require.NoError(t, err)
	assert.Same(t, first, cached)

	reloaded, err := ReloadRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"par"}, reloaded.FixtureNames())
}

func TestValidateStrobePrefs(t *testing.T) {
	tests := []struct {
		name    string
		prefs   *StrobePrefs
		wantErr string
	}{
		{name: "unset", prefs: &StrobePrefs{}},
		{name: "set", prefs: &StrobePrefs{Frequency: 12, Duration: time.Second}},
		{name: "negative frequency", prefs: &StrobePrefs{Frequency: -1}, wantErr: "strobe.frequency must not be negative"},
		{name: "negative duration", prefs: &StrobePrefs{Duration: -time.Second}, wantErr: "strobe.duration must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRegistry()
			r.Strobe = tt.prefs

			err := r.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
