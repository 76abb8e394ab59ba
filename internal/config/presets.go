package config

import "sort"

var Presets = map[string]map[string]*Config{
	"orbit": {
		"circular":   orbitPreset(0.5, 0, 20),
		"elliptic":   orbitPreset(1, 0.25, 40),
		"flyby":      orbitPreset(1, 0.6, 10),
		"near-catch": orbitPreset(1, 0.8, 10),
		"fall-in":    orbitPreset(1, 1, 3),
	},
	"binary": {
		"default": binaryPreset(3, 1.5),
		"equal":   binaryPreset(1, 1),
		"extreme": binaryPreset(7.5, 0.5),
	},
}

func orbitPreset(angularMomentum, energy, duration float64) *Config {
	cfg := DefaultConfig()
	cfg.Orbit.AngularMomentum = angularMomentum
	cfg.Orbit.Energy = energy
	cfg.Orbit.Duration = duration
	if energy >= 0.8 {
		// plunging orbits pass close to the horizon
		cfg.Orbit.Dt = 0.001
	}
	return cfg
}

func binaryPreset(first, second float64) *Config {
	cfg := DefaultConfig()
	cfg.Binary.FirstMass = first
	cfg.Binary.SecondMass = second
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(kind, preset string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListKinds() []string {
	kinds := make([]string, 0, len(Presets))
	for kind := range Presets {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
