package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"

	"github.com/muurk/dmxstrobe/internal/dmx"
)

// PortAuto selects the first discovered adapter
const PortAuto = "auto"

// Settings are the process-wide defaults read from the environment.
// Command-line flags override them.
type Settings struct {
	Port       string        `env:"DMXSTROBE_PORT" envDefault:"auto"`
	Address    int           `env:"DMXSTROBE_ADDRESS" envDefault:"1"`
	Frequency  float64       `env:"DMXSTROBE_FREQUENCY" envDefault:"8"`
	Duration   time.Duration `env:"DMXSTROBE_DURATION" envDefault:"10s"`
	Fixture    string        `env:"DMXSTROBE_FIXTURE"`
	ConfigPath string        `env:"DMXSTROBE_CONFIG"`
}

// LoadSettings reads an optional .env file from the working directory and
// then parses the environment. Variables already set in the environment win
// over the .env file.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks value ranges
func (s *Settings) Validate() error {
	if s.Address < 1 || s.Address > dmx.UniverseSize {
		return fmt.Errorf("DMXSTROBE_ADDRESS: %w",
			&dmx.OutOfRangeError{Field: "address", Value: s.Address, Min: 1, Max: dmx.UniverseSize})
	}
	if s.Frequency <= 0 {
		return fmt.Errorf("DMXSTROBE_FREQUENCY must be > 0, got %v", s.Frequency)
	}
	if s.Duration < 0 {
		return fmt.Errorf("DMXSTROBE_DURATION must be >= 0, got %v", s.Duration)
	}
	if s.Port == "" {
		s.Port = PortAuto
	}
	return nil
}

// AutoPort reports whether the port should be discovered
func (s *Settings) AutoPort() bool {
	return s.Port == "" || s.Port == PortAuto
}

// MergePrefs fills frequency and duration from the config file preferences
// when the corresponding environment variable was not set.
func (s *Settings) MergePrefs(p *StrobePrefs) {
	if p == nil {
		return
	}
	if _, ok := os.LookupEnv("DMXSTROBE_FREQUENCY"); !ok && p.Frequency > 0 {
		s.Frequency = p.Frequency
	}
	if _, ok := os.LookupEnv("DMXSTROBE_DURATION"); !ok && p.Duration > 0 {
		s.Duration = p.Duration
	}
}
