package navigation

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/diffbot/internal/control"
	"github.com/san-kum/diffbot/internal/drive"
)

// Seeker drives toward Goal at constant linear speed while a PID loop turns
// the heading error to zero.
type Seeker struct {
	Speed     float64
	Tolerance float64

	goal    r2.Vec
	pid     *control.PID
	arrived bool
}

func NewSeeker(goal r2.Vec, speed, tolerance float64, gains control.Gains) *Seeker {
	return &Seeker{
		Speed:     speed,
		Tolerance: tolerance,
		goal:      goal,
		pid:       control.NewPID(gains),
	}
}

func (s *Seeker) Goal() r2.Vec { return s.goal }

// SetGoal switches to a new goal. The heading error changes meaning, so the
// controller memory is cleared.
func (s *Seeker) SetGoal(goal r2.Vec) {
	s.goal = goal
	s.arrived = false
	s.pid.Reset()
}

func (s *Seeker) Arrived() bool { return s.arrived }

func (s *Seeker) PID() *control.PID { return s.pid }

// Command computes the desired velocity for the current pose. On error the
// controller state is untouched and the zero velocity is returned.
func (s *Seeker) Command(pose drive.Pose, dt float64) (drive.Velocity, Error, error) {
	e := PoseError(s.goal, pose)
	if err := drive.CheckTimeStep(dt); err != nil {
		return drive.Velocity{}, e, err
	}

	if e.Distance <= s.Tolerance {
		s.arrived = true
		return drive.Velocity{}, e, nil
	}

	w, err := s.pid.Next(e.Heading, dt)
	if err != nil {
		return drive.Velocity{}, e, err
	}
	s.arrived = false
	return drive.Velocity{Linear: s.Speed, Angular: w}, e, nil
}
