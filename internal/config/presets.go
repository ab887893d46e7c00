package config

import (
	"sort"

	"github.com/san-kum/chambertherm/internal/thermal"
)

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"cold_start": {
		Integrator: "rk4",
		Params:     thermal.DefaultParams(),
		Run:        RunConfig{InitialTemp: 5, T0: 0, TEnd: 120, Dt: 1},
	},
	"coarse": {
		Integrator: "rk4",
		Params:     thermal.DefaultParams(),
		Run:        RunConfig{InitialTemp: 50, T0: 0, TEnd: 300, Dt: 30},
	},
	"unstable": {
		Integrator: "rk4",
		Params:     thermal.DefaultParams(),
		Run:        RunConfig{InitialTemp: 50, T0: 0, TEnd: 600, Dt: 60},
	},
	"oven": {
		Integrator: "rk4",
		Params: thermal.Params{
			HeatInput:     1500,
			TransferCoeff: 10,
			Area:          1.5,
			Mass:          40,
			SpecificHeat:  500,
			Ambient:       22,
		},
		Run: RunConfig{InitialTemp: 22, T0: 0, TEnd: 7200, Dt: 10},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
