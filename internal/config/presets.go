package config

import (
	"sort"

	"github.com/avray/plife/internal/life"
)

// Named starting points. Each is a full config; flags still override
// individual fields.
var presets = map[string]func() *Config{
	"soup": func() *Config {
		// The default: random matrix, torus, everything moving.
		return DefaultConfig()
	},
	"cells": func() *Config {
		cfg := DefaultConfig()
		cfg.Particles = 2000
		cfg.Types = 8
		cfg.MutualOnly = true
		cfg.Settle.Enabled = true
		cfg.Settle.Gain = 6
		cfg.Settle.Radius = 0.2
		cfg.Placement = life.PlacementNoise
		return cfg
	},
	"chase": func() *Config {
		cfg := DefaultConfig()
		cfg.Particles = 1500
		cfg.Types = 3
		cfg.Drag = 1.0
		cfg.MaxSpeed = 2.0
		return cfg
	},
	"crystal": func() *Config {
		cfg := DefaultConfig()
		cfg.Matrix = life.MatrixRing
		cfg.Wrap = false
		cfg.Settle.Enabled = true
		cfg.Settle.Gain = 8
		cfg.Settle.Radius = 0.18
		cfg.Placement = life.PlacementDisk
		return cfg
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
