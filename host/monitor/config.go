package monitor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls the telemetry monitor.
type Config struct {
	// Device is the fixture's serial device path.
	Device string `yaml:"device"`

	// Baud is the serial baud rate (ignored for USB CDC).
	Baud int `yaml:"baud"`

	// ShowHeartbeat also prints the periodic heartbeat reports, which
	// are otherwise suppressed as noise.
	ShowHeartbeat bool `yaml:"show_heartbeat"`
}

// DefaultConfig returns the monitor defaults.
func DefaultConfig() Config {
	return Config{
		Device: "/dev/ttyACM0",
		Baud:   115200,
	}
}

// LoadConfig reads and validates a YAML config file. Fields left unset
// fall back to the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration correctness. It does not mutate the
// configuration.
func (c Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("device must not be empty")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("baud must be positive, got %d", c.Baud)
	}
	return nil
}
