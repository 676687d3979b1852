// Package behavior implements reactive wall-following laws.
//
// Three variants of increasing sophistication share the [Behavior]
// interface:
//
//   - [ConstantSpeed]: fixed forward speed, proportional distance correction
//   - [ObstacleAware]: forward speed scaled by the frontal range, zero when
//     an obstacle is too close
//   - [ParallelCorrecting]: adds a second term that aligns the robot with the
//     wall using a front and a rear side sensor
//
// All variants are pure. By default the wall is on the robot's left;
// [RightWall] mirrors the sign of the angular command.
package behavior

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/san-kum/diffbot/internal/drive"
)

// Side selects which wall is followed.
type Side int

const (
	LeftWall Side = iota
	RightWall
)

func (s Side) sign() float64 {
	if s == RightWall {
		return -1
	}
	return 1
}

func (s Side) String() string {
	switch s {
	case LeftWall:
		return "left"
	case RightWall:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// ParseSide accepts "left" or "right".
func ParseSide(name string) (Side, error) {
	switch name {
	case "", "left":
		return LeftWall, nil
	case "right":
		return RightWall, nil
	default:
		return LeftWall, errors.Errorf("unknown wall side: %s", name)
	}
}

// Readings are range measurements in meters for one cycle. Wall is the
// single side sensor; WallFront and WallRear are the paired side sensors
// used by ParallelCorrecting.
type Readings struct {
	Wall      float64 `json:"wall" yaml:"wall"`
	Front     float64 `json:"front" yaml:"front"`
	WallFront float64 `json:"wall_front" yaml:"wall_front"`
	WallRear  float64 `json:"wall_rear" yaml:"wall_rear"`
}

type Behavior interface {
	Velocity(r Readings) drive.Velocity
	Name() string
}

type ConstantSpeed struct {
	Speed   float64
	Kp      float64
	Desired float64
	Side    Side
}

func (c ConstantSpeed) Name() string { return "constant" }

func (c ConstantSpeed) Velocity(r Readings) drive.Velocity {
	return drive.Velocity{
		Linear:  c.Speed,
		Angular: c.Side.sign() * c.Kp * (r.Wall - c.Desired),
	}
}

type ObstacleAware struct {
	MaxSpeed    float64
	Kp          float64
	Desired     float64
	MinObstacle float64
	MaxRange    float64
	Side        Side
}

func (o ObstacleAware) Name() string { return "obstacle" }

func (o ObstacleAware) Velocity(r Readings) drive.Velocity {
	return drive.Velocity{
		Linear:  forwardSpeed(r.Front, o.MaxSpeed, o.MinObstacle, o.MaxRange),
		Angular: o.Side.sign() * o.Kp * (r.Wall - o.Desired),
	}
}

// ParallelCorrecting keeps Kp (distance) and Kp2 (alignment) separate; they
// are tuned independently.
type ParallelCorrecting struct {
	MaxSpeed    float64
	Kp          float64
	Kp2         float64
	Desired     float64
	MinObstacle float64
	MaxRange    float64
	Side        Side
}

func (p ParallelCorrecting) Name() string { return "parallel" }

func (p ParallelCorrecting) Velocity(r Readings) drive.Velocity {
	avg := (r.WallFront + r.WallRear) / 2
	w := p.Kp*(avg-p.Desired) + p.Kp2*(r.WallFront-r.WallRear)
	return drive.Velocity{
		Linear:  forwardSpeed(r.Front, p.MaxSpeed, p.MinObstacle, p.MaxRange),
		Angular: p.Side.sign() * w,
	}
}

// forwardSpeed stops at or inside minObstacle and otherwise scales with the
// frontal range, clamped to maxRange so the result never exceeds maxSpeed.
func forwardSpeed(front, maxSpeed, minObstacle, maxRange float64) float64 {
	if front <= minObstacle || maxRange <= 0 {
		return 0
	}
	return maxSpeed * math.Min(front, maxRange) / maxRange
}
