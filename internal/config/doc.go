// Package config provides configuration for dmxstrobe.
//
// Two sources are combined:
//
//   - Settings: process defaults from environment variables (DMXSTROBE_PORT,
//     DMXSTROBE_ADDRESS, DMXSTROBE_FREQUENCY, DMXSTROBE_DURATION,
//     DMXSTROBE_FIXTURE, DMXSTROBE_CONFIG), optionally seeded from a .env file
//     in the working directory.
//   - Registry: a YAML file of named fixtures, custom layouts and strobe
//     preferences.
//
// Command-line flags override both.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - $XDG_CONFIG_HOME/dmxstrobe/config.yaml when XDG_CONFIG_HOME is set
//   - Linux: $HOME/.config/dmxstrobe/config.yaml
//   - macOS: $HOME/Library/Application Support/dmxstrobe/config.yaml
//   - Windows: %AppData%\dmxstrobe\config.yaml
//
// DMXSTROBE_CONFIG points at a different file.
//
// # File Format
//
//	version: 1
//	port: /dev/ttyUSB0
//	fixtures:
//	  par:
//	    address: 1
//	    layout: par6
//	    color: white
//	  strip:
//	    address: 7
//	    layout: rgb3
//	layouts:
//	  rgb3:
//	    controls: {red: 0, green: 1, blue: 2}
//	strobe:
//	  frequency: 8
//	  duration: 10s
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//	patch, err := registry.Patch("par")
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File writes are serialised by a mutex and are atomic.
package config
