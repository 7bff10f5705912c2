package config

import "sort"

// Presets are named orbit configurations. "spiral" is the classic plunging
// orbit that winds around the body before crossing the horizon.
var Presets = map[string]*Config{
	"spiral": {
		Mass: 1, Energy: 2, AngularMomentum: 15,
		InitState:     InitStateConfig{Distance: 30, Angle: 3.14},
		StepSize:      1.0 / 1000,
		CaptureRadius: 2,
	},
	"plunge": {
		Mass: 1, Energy: 2, AngularMomentum: 0,
		InitState:     InitStateConfig{Distance: 30, Angle: 3.14},
		StepSize:      1.0 / 1000,
		CaptureRadius: 2,
	},
	"grazing": {
		Mass: 1, Energy: 2, AngularMomentum: 18,
		InitState:     InitStateConfig{Distance: 40, Angle: 0, Speed: -0.2},
		StepSize:      1.0 / 1000,
		CaptureRadius: 2,
		MaxSteps:      5_000_000,
	},
	"infall": {
		Mass: 1, Energy: 1, AngularMomentum: 4,
		InitState:     InitStateConfig{Distance: 20, Angle: 0, Speed: -0.5},
		StepSize:      1.0 / 1000,
		CaptureRadius: 2,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
