// Package config maps YAML files and named presets onto simulation
// specs. CLI flags override file values; file values override defaults.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avray/plife/internal/life"
)

type Config struct {
	Particles  int          `yaml:"particles"`
	Types      int          `yaml:"types"`
	Matrix     string       `yaml:"matrix"` // "random", "ring", or a matrix.json path
	RMin       float64      `yaml:"r_min"`
	Radius     float64      `yaml:"radius"`
	Dt         float64      `yaml:"dt"`
	Drag       float64      `yaml:"drag"`
	MaxSpeed   float64      `yaml:"max_speed"`
	Wrap       bool         `yaml:"wrap"`
	CellSize   float64      `yaml:"cell_size"`
	MutualOnly bool         `yaml:"mutual_only"`
	Settle     SettleConfig `yaml:"settle"`
	Placement  string       `yaml:"placement"`
	Seed       int64        `yaml:"seed"`
	Steps      int          `yaml:"steps"`
}

type SettleConfig struct {
	Enabled bool    `yaml:"enabled"`
	Gain    float64 `yaml:"gain"`
	Radius  float64 `yaml:"radius"`
}

func DefaultConfig() *Config {
	spec := life.DefaultSpec()
	return &Config{
		Particles: spec.N,
		Types:     spec.K,
		Matrix:    spec.MatrixPreset,
		RMin:      spec.RMin,
		Radius:    spec.R,
		Dt:        spec.Dt,
		Drag:      spec.Drag,
		MaxSpeed:  spec.VMax,
		Wrap:      spec.Wrap,
		CellSize:  spec.CellSize,
		Settle: SettleConfig{
			Enabled: spec.SettleEnabled,
			Gain:    spec.SettleK,
			Radius:  spec.SettleR,
		},
		Placement: spec.Placement,
		Steps:     1000,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToSpec converts the config to an engine spec. Matrix file paths are
// resolved by the caller; here only the preset names pass through.
func (c *Config) ToSpec() life.Spec {
	preset := c.Matrix
	if preset != life.MatrixRandom && preset != life.MatrixRing {
		preset = life.MatrixRandom
	}
	return life.Spec{
		N:             c.Particles,
		K:             c.Types,
		MatrixPreset:  preset,
		RMin:          c.RMin,
		R:             c.Radius,
		Dt:            c.Dt,
		Drag:          c.Drag,
		VMax:          c.MaxSpeed,
		Wrap:          c.Wrap,
		CellSize:      c.CellSize,
		MutualOnly:    c.MutualOnly,
		SettleEnabled: c.Settle.Enabled,
		SettleK:       c.Settle.Gain,
		SettleR:       c.Settle.Radius,
		Placement:     c.Placement,
	}
}
