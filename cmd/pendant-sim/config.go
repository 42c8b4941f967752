package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pendant-go/types"
)

// SimConfig is the user-facing YAML configuration of the simulator. Keep
// defaults and validation centralized so the rest of the code can assume
// a well-formed config.
type SimConfig struct {
	LEDCount      int    `yaml:"led_count"`
	LongPressMs   int    `yaml:"long_press_ms"`
	GroupWindowMs int    `yaml:"group_window_ms"`
	StorePath     string `yaml:"store_path"`
}

// DefaultSimConfig returns a fully-populated SimConfig with defaults.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		LEDCount:      types.DefaultLEDCount,
		LongPressMs:   types.DefaultLongPressMs,
		GroupWindowMs: types.DefaultGroupWindowMs,
		StorePath:     "pendant-sim.store",
	}
}

// LoadSimConfig reads and parses a YAML config file. Unknown fields are
// rejected (helps catch typos) via KnownFields(true).
func LoadSimConfig(path string) (SimConfig, error) {
	if path == "" {
		return SimConfig{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return SimConfig{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultSimConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return SimConfig{}, fmt.Errorf("decode config yaml: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err == nil {
		return SimConfig{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	return cfg, cfg.Validate()
}

// Validate checks config invariants and returns a user-friendly error.
func (c SimConfig) Validate() error {
	if c.LEDCount < 1 {
		return errors.New("led_count must be >= 1")
	}
	if c.LongPressMs <= c.GroupWindowMs {
		return errors.New("long_press_ms must be greater than group_window_ms")
	}
	if c.StorePath == "" {
		return errors.New("store_path must not be empty")
	}
	return nil
}

// ToConfig maps the simulator config onto the core's config type. Pin
// numbers have no meaning on the host.
func (c SimConfig) ToConfig() types.Config {
	return types.Config{
		LEDCount:      c.LEDCount,
		LongPressMs:   uint32(c.LongPressMs),
		GroupWindowMs: uint32(c.GroupWindowMs),
	}.Normalized()
}
