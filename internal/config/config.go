// Package config loads the optional gpuburn YAML file with site defaults
// for the harness.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where node images install the harness configuration.
const DefaultPath = "/etc/gpu_burn/gpuburn.yaml"

// Default values for harness configuration.
const (
	DefaultTimeSecs  = 60
	DefaultMaxOutput = 1 << 20 // 1 MB
	DefaultRoot      = "/usr/lib/gpu_burn"
)

// Config holds the parsed gpuburn.yaml configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version     int    `yaml:"version"`
	RawRoot     string `yaml:"root"`       // gpu_burn root directory
	RawTimeSecs int    `yaml:"time_secs"`  // default burn duration
	RawMaxOut   int    `yaml:"max_output"` // bytes per captured stream
	StoreDir    string `yaml:"store_dir"`  // invocation history directory; empty disables history
	MinGPUs     int    `yaml:"min_gpus"`   // inventory floor; 0 disables the preflight
}

// Root returns the configured gpu_burn root or the default RPM path.
func (c *Config) Root() string {
	if c.RawRoot != "" {
		return c.RawRoot
	}
	return DefaultRoot
}

// TimeSecs returns the configured burn duration or the default.
func (c *Config) TimeSecs() int {
	if c.RawTimeSecs > 0 {
		return c.RawTimeSecs
	}
	return DefaultTimeSecs
}

// MaxOutputBytes returns the configured per-stream cap or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOut > 0 {
		return c.RawMaxOut
	}
	return DefaultMaxOutput
}

// Load reads the configuration from path, or from DefaultPath when path is
// empty. A missing file is not an error; a default Config is returned.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
