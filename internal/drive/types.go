package drive

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Pose is the robot's planar position [m] and heading [rad] in (-π, π].
type Pose struct {
	X       float64 `json:"x" yaml:"x" toml:"x"`
	Y       float64 `json:"y" yaml:"y" toml:"y"`
	Heading float64 `json:"heading" yaml:"heading" toml:"heading"`
}

func (p Pose) IsValid() bool {
	for _, v := range [3]float64{p.X, p.Y, p.Heading} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Pose) String() string {
	return fmt.Sprintf("(x=%.4f, y=%.4f, θ=%.4f)", p.X, p.Y, p.Heading)
}

// WheelSpeeds holds wheel angular speeds in rad/s.
type WheelSpeeds struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// Velocity is the robot body velocity: linear [m/s] and angular [rad/s].
type Velocity struct {
	Linear  float64 `json:"linear"`
	Angular float64 `json:"angular"`
}

// Geometry describes the drive train. It is immutable for a session.
type Geometry struct {
	WheelRadius float64 `json:"wheel_radius" yaml:"wheel_radius" toml:"wheel_radius"`
	WheelBase   float64 `json:"wheel_base" yaml:"wheel_base" toml:"wheel_base"`
}

// NewGeometry rejects non-positive dimensions so that no cycle ever divides
// by a bad radius or base.
func NewGeometry(wheelRadius, wheelBase float64) (Geometry, error) {
	g := Geometry{WheelRadius: wheelRadius, WheelBase: wheelBase}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// Validate checks a Geometry built outside NewGeometry, e.g. decoded from a
// config file.
func (g Geometry) Validate() error {
	if !(g.WheelRadius > 0) || !(g.WheelBase > 0) {
		return errors.Wrapf(ErrInvalidGeometry, "radius=%g base=%g", g.WheelRadius, g.WheelBase)
	}
	return nil
}

// EncoderSample holds accumulated pulse counts for both wheels.
type EncoderSample struct {
	Left  int64 `json:"left" yaml:"left"`
	Right int64 `json:"right" yaml:"right"`
}
