package config

import (
	"sort"

	"github.com/san-kum/diffbot/internal/drive"
)

// Presets are robot configurations keyed by robot name.
var Presets = map[string]*Config{
	"epuck": func() *Config {
		c := DefaultConfig()
		c.Robot = "epuck"
		return c
	}(),
	"turtle": func() *Config {
		c := DefaultConfig()
		c.Robot = "turtle"
		c.Geometry = drive.Geometry{WheelRadius: 0.033, WheelBase: 0.16}
		c.PulsesPerRev = 4096
		c.Dt = 0.05
		c.Goal.Speed = 0.2
		c.Goal.Tolerance = 0.05
		c.Wall.Speed = 0.15
		c.Wall.MaxSpeed = 0.2
		c.Wall.Desired = 0.4
		c.Wall.MinObstacle = 0.25
		c.Wall.MaxRange = 1.0
		return c
	}(),
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
