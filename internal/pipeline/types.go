package pipeline

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/san-kum/diffbot/internal/behavior"
	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/navigation"
)

type Mode int

const (
	ModeWall Mode = iota
	ModeGoal
)

func (m Mode) String() string {
	switch m {
	case ModeWall:
		return "wall"
	case ModeGoal:
		return "goal"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(name string) (Mode, error) {
	switch name {
	case "wall":
		return ModeWall, nil
	case "goal":
		return ModeGoal, nil
	default:
		return ModeWall, errors.Errorf("unknown mode: %s", name)
	}
}

// Input is everything the sensors deliver for one cycle.
type Input struct {
	Encoders drive.EncoderSample
	Readings behavior.Readings
	Dt       float64
}

// Output is the result of one completed cycle.
type Output struct {
	Cycle     int
	Time      float64
	Pose      drive.Pose
	Measured  drive.WheelSpeeds
	Velocity  drive.Velocity
	Wheels    drive.WheelSpeeds
	GoalError navigation.Error
	Arrived   bool
}

type Metric interface {
	Name() string
	Observe(in Input, out Output)
	Value() float64
	Reset()
}

type Observer interface {
	OnCycle(in Input, out Output)
}

// CycleError wraps an error with the cycle it happened in.
type CycleError struct {
	Cycle   int
	Time    float64
	Wrapped error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle %d (t=%.4f): %v", e.Cycle, e.Time, e.Wrapped)
}

func (e *CycleError) Unwrap() error {
	return e.Wrapped
}
