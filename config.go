package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the window and world settings of a game, loadable from a
// YAML file.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// PixelsPerMeter is the camera zoom the game starts with.
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`

	// Gravity is the initial gravity of the main layer in m/s^2.
	Gravity GravityConfig `yaml:"gravity"`

	// Debug enables the fixture outline overlay.
	Debug bool `yaml:"debug"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Title:          "engine",
		Width:          1280,
		Height:         720,
		PixelsPerMeter: DefaultPixelsPerMeter,
	}
}

// LoadConfig reads a YAML config file. Omitted fields keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data. Omitted fields keep their
// defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("engine: config: window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.PixelsPerMeter <= 0 {
		return fmt.Errorf("engine: config: pixels_per_meter must be positive, got %g", c.PixelsPerMeter)
	}
	return nil
}
