// Package config loads the execution limits a host binary applies before
// running a program, kept deliberately small: the core library itself
// never reads a Config, only the cmd/ drivers do.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the execution-time knobs a host exposes to an operator.
type Config struct {
	Execution struct {
		MaxSteps uint64 `toml:"max_steps"`
		Trace    bool   `toml:"trace"`
	} `toml:"execution"`
}

// DefaultConfig returns a Config with sensible defaults: an unlimited
// step budget and tracing off.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Execution.MaxSteps = 0
	cfg.Execution.Trace = false
	return cfg
}

// Load reads a Config from path, returning defaults unchanged if the file
// does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
