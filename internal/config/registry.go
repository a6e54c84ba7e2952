package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "dmxstrobe"
	configFile = "config.yaml"
)

// The default-path registry is loaded once per process; fileMutex
// serialises writes.
var (
	globalRegistry     *Registry
	globalRegistryErr  error
	globalRegistryOnce sync.Once
	fileMutex          sync.Mutex
)

// GetConfigDir returns the directory holding the config file.
// XDG_CONFIG_HOME wins on every platform; otherwise the OS user config
// directory is used (~/.config on Linux, ~/Library/Application Support on
// macOS, %AppData% on Windows).
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// LoadRegistry loads the registry from the default path once per process.
// A missing file yields an empty default registry.
func LoadRegistry() (*Registry, error) {
	globalRegistryOnce.Do(func() {
		path, err := GetConfigPath()
		if err != nil {
			globalRegistryErr = fmt.Errorf("failed to get config path: %w", err)
			return
		}
		globalRegistry, globalRegistryErr = LoadRegistryFile(path)
	})
	return globalRegistry, globalRegistryErr
}

// LoadRegistryFile loads a registry from an explicit path.
// A missing file yields an empty default registry bound to that path.
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		r := NewRegistry()
		r.path = path
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if registry.Fixtures == nil {
		registry.Fixtures = make(map[string]*Fixture)
	}
	if registry.Layouts == nil {
		registry.Layouts = make(map[string]*LayoutConfig)
	}
	registry.path = path

	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &registry, nil
}

// Save writes the registry to the path it was loaded from, or the default
// path. The write is atomic (temp file plus rename).
func (r *Registry) Save() error {
	path := r.path
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}
	return r.SaveTo(path)
}

// SaveTo writes the registry atomically to path
func (r *Registry) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# dmxstrobe configuration file
# Fixtures are patched by name; layouts map control names
# (dimmer, red, green, blue, strobe, program) to channel offsets.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	r.path = path
	return nil
}

// ReloadRegistry discards the cached global registry and loads it again
func ReloadRegistry() (*Registry, error) {
	fileMutex.Lock()
	globalRegistryOnce = sync.Once{}
	fileMutex.Unlock()
	return LoadRegistry()
}

// DefaultRegistry returns the registry written by `config init`: one par6
// fixture at address 1 and the reference strobe preferences.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	f := registry.SetFixture("par", 1, "par6")
	f.Color = "white"
	f.Description = "6-channel LED par (dimmer, RGB, strobe, program)"
	registry.Strobe = &StrobePrefs{Frequency: 8, Duration: 10 * time.Second}
	return registry
}
