package config

import (
	"sort"

	"github.com/pkg/errors"
)

// tunables maps dotted parameter names to the fields they set.
var tunables = map[string]func(c *Config) *float64{
	"goal.kp":           func(c *Config) *float64 { return &c.Goal.Kp },
	"goal.ki":           func(c *Config) *float64 { return &c.Goal.Ki },
	"goal.kd":           func(c *Config) *float64 { return &c.Goal.Kd },
	"goal.speed":        func(c *Config) *float64 { return &c.Goal.Speed },
	"goal.tolerance":    func(c *Config) *float64 { return &c.Goal.Tolerance },
	"wall.kp":           func(c *Config) *float64 { return &c.Wall.Kp },
	"wall.kp2":          func(c *Config) *float64 { return &c.Wall.Kp2 },
	"wall.desired":      func(c *Config) *float64 { return &c.Wall.Desired },
	"wall.speed":        func(c *Config) *float64 { return &c.Wall.Speed },
	"wall.max_speed":    func(c *Config) *float64 { return &c.Wall.MaxSpeed },
	"wall.min_obstacle": func(c *Config) *float64 { return &c.Wall.MinObstacle },
	"wall.max_range":    func(c *Config) *float64 { return &c.Wall.MaxRange },
}

func (c *Config) SetParam(name string, value float64) error {
	field, ok := tunables[name]
	if !ok {
		return errors.Errorf("unknown parameter: %s", name)
	}
	*field(c) = value
	return nil
}

func (c *Config) GetParam(name string) (float64, error) {
	field, ok := tunables[name]
	if !ok {
		return 0, errors.Errorf("unknown parameter: %s", name)
	}
	return *field(c), nil
}

func ParamNames() []string {
	names := make([]string, 0, len(tunables))
	for name := range tunables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
