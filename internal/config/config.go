package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/diffbot/internal/drive"
)

const (
	DefaultDt           = 0.032
	DefaultDuration     = 10.0
	DefaultPulsesPerRev = 1000
	DefaultKp           = 0.5
	DefaultKi           = 0.1
	DefaultKd           = 0.01
	DefaultSpeed        = 0.1
	DefaultTolerance    = 0.01
	DefaultDesired      = 0.2
	DefaultPrefix       = "diffbot"
)

type Config struct {
	Robot        string          `yaml:"robot" toml:"robot"`
	Mode         string          `yaml:"mode" toml:"mode"`
	Geometry     drive.Geometry  `yaml:"geometry" toml:"geometry"`
	PulsesPerRev int             `yaml:"pulses_per_rev" toml:"pulses_per_rev"`
	Dt           float64         `yaml:"dt" toml:"dt"`
	Duration     float64         `yaml:"duration" toml:"duration"`
	InitialPose  drive.Pose      `yaml:"initial_pose" toml:"initial_pose"`
	Goal         GoalConfig      `yaml:"goal" toml:"goal"`
	Wall         WallConfig      `yaml:"wall" toml:"wall"`
	Telemetry    TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
	LogLevel     string          `yaml:"log_level" toml:"log_level"`
}

type GoalConfig struct {
	X         float64 `yaml:"x" toml:"x"`
	Y         float64 `yaml:"y" toml:"y"`
	Speed     float64 `yaml:"speed" toml:"speed"`
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"`
	Kp        float64 `yaml:"kp" toml:"kp"`
	Ki        float64 `yaml:"ki" toml:"ki"`
	Kd        float64 `yaml:"kd" toml:"kd"`
}

type WallConfig struct {
	Behavior    string  `yaml:"behavior" toml:"behavior"`
	Side        string  `yaml:"side" toml:"side"`
	Speed       float64 `yaml:"speed" toml:"speed"`
	MaxSpeed    float64 `yaml:"max_speed" toml:"max_speed"`
	Kp          float64 `yaml:"kp" toml:"kp"`
	Kp2         float64 `yaml:"kp2" toml:"kp2"`
	Desired     float64 `yaml:"desired" toml:"desired"`
	MinObstacle float64 `yaml:"min_obstacle" toml:"min_obstacle"`
	MaxRange    float64 `yaml:"max_range" toml:"max_range"`
}

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Broker   string `yaml:"broker" toml:"broker"`
	ClientID string `yaml:"client_id" toml:"client_id"`
	Prefix   string `yaml:"prefix" toml:"prefix"`
}

func DefaultConfig() *Config {
	return &Config{
		Robot:        "epuck",
		Mode:         "wall",
		Geometry:     drive.Geometry{WheelRadius: 0.0205, WheelBase: 0.052},
		PulsesPerRev: DefaultPulsesPerRev,
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		Goal: GoalConfig{
			Speed:     DefaultSpeed,
			Tolerance: DefaultTolerance,
			Kp:        DefaultKp,
			Ki:        DefaultKi,
			Kd:        DefaultKd,
		},
		Wall: WallConfig{
			Behavior:    "obstacle",
			Side:        "left",
			Speed:       DefaultSpeed,
			MaxSpeed:    DefaultSpeed,
			Kp:          1.0,
			Kp2:         1.0,
			Desired:     DefaultDesired,
			MinObstacle: 0.05,
			MaxRange:    0.25,
		},
		Telemetry: TelemetryConfig{
			Broker:   "tcp://localhost:1883",
			ClientID: "diffbot",
			Prefix:   DefaultPrefix,
		},
		LogLevel: "info",
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML or TOML config on top of the defaults. The format is
// chosen by file extension.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so fields missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy. Config holds no reference types.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
