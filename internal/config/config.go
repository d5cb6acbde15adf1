// Package config loads and saves the run-time constants of the isoline tool.
// It handles YAML files and provides default values for anything they omit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/isoline/internal/atlas"
	"github.com/ironsheep/isoline/internal/isoline"
)

// EnvPath names a config file read when no -config flag is given.
const EnvPath = "ISOLINE_CONFIG"

// Config represents the application configuration loaded from YAML
type Config struct {
	// Target is the resolution every input is rescaled to
	Target struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"target"`

	// Step is the grid stride, and also the size of each contour pattern
	Step struct {
		X int `yaml:"x"`
		Y int `yaml:"y"`
	} `yaml:"step"`

	// Sigma is the luminance threshold; brighter pixels are outside
	Sigma int `yaml:"sigma"`

	// Threads is the worker count used when a caller does not pass one
	Threads int `yaml:"threads"`

	// AtlasDir holds 0.ppm..15.ppm; empty selects the built-in patterns
	AtlasDir string `yaml:"atlasDir"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	p := isoline.DefaultParams()

	cfg := &Config{}
	cfg.Target.Width = p.TargetWidth
	cfg.Target.Height = p.TargetHeight
	cfg.Step.X = p.StepX
	cfg.Step.Y = p.StepY
	cfg.Sigma = p.Sigma
	cfg.Threads = runtime.NumCPU()
	return cfg
}

// LoadConfig loads configuration from a YAML file.
// An empty path or a file that doesn't exist yields the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

// Validate reports whether the configuration describes a runnable pipeline.
func (c *Config) Validate() error {
	if c.Threads < 1 || c.Threads > isoline.MaxWorkers {
		return fmt.Errorf("%w: threads %d outside [1,%d]", isoline.ErrUsage, c.Threads, isoline.MaxWorkers)
	}
	return c.Params().Validate()
}

// Params converts the configuration into pipeline parameters.
func (c *Config) Params() isoline.Params {
	return isoline.Params{
		TargetWidth:  c.Target.Width,
		TargetHeight: c.Target.Height,
		StepX:        c.Step.X,
		StepY:        c.Step.Y,
		Sigma:        c.Sigma,
	}
}

// LoadAtlas returns the contour patterns for the configured step, read from
// AtlasDir when it is set.
func (c *Config) LoadAtlas() (*atlas.Atlas, error) {
	if c.AtlasDir == "" {
		return atlas.Default(c.Step.X, c.Step.Y)
	}
	return atlas.Load(c.AtlasDir, c.Step.X, c.Step.Y)
}

// Pipeline builds a pipeline from the configuration and its atlas.
func (c *Config) Pipeline() (*isoline.Pipeline, error) {
	at, err := c.LoadAtlas()
	if err != nil {
		return nil, err
	}
	return isoline.New(c.Params(), at)
}
