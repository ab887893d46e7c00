package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chambertherm/internal/sim"
	"github.com/san-kum/chambertherm/internal/thermal"
)

const (
	DefaultIntegrator  = "rk4"
	DefaultInitialTemp = 50.0
	DefaultT0          = 0.0
	DefaultTEnd        = 100.0
	DefaultDt          = 1.0
)

type Config struct {
	Integrator string         `yaml:"integrator"`
	Params     thermal.Params `yaml:"params"`
	Run        RunConfig      `yaml:"run"`
}

type RunConfig struct {
	InitialTemp float64 `yaml:"initial_temp"`
	T0          float64 `yaml:"t0"`
	TEnd        float64 `yaml:"t_end"`
	Dt          float64 `yaml:"dt"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Params:     thermal.DefaultParams(),
		Run: RunConfig{
			InitialTemp: DefaultInitialTemp,
			T0:          DefaultT0,
			TEnd:        DefaultTEnd,
			Dt:          DefaultDt,
		},
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if _, err := sim.Steps(c.Run.T0, c.Run.TEnd, c.Run.Dt); err != nil {
		return err
	}
	if c.Integrator == "" {
		return fmt.Errorf("integrator must be set")
	}
	return nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
