package odometry

import (
	"github.com/pkg/errors"

	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/kinematics"
)

// Estimator keeps the running pose estimate of one robot. It is not safe for
// concurrent use.
type Estimator struct {
	geometry     drive.Geometry
	pulsesPerRev int

	pose   drive.Pose
	prev   drive.EncoderSample
	primed bool

	lastSpeeds drive.WheelSpeeds
}

// NewEstimator starts at initial with its heading folded into (-π, π].
func NewEstimator(g drive.Geometry, pulsesPerRev int, initial drive.Pose) (*Estimator, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if pulsesPerRev <= 0 {
		return nil, errors.Wrapf(drive.ErrInvalidTimeStep, "pulses per revolution=%d", pulsesPerRev)
	}
	initial.Heading = drive.WrapOnce(drive.Normalize(initial.Heading))
	return &Estimator{
		geometry:     g,
		pulsesPerRev: pulsesPerRev,
		pose:         initial,
	}, nil
}

// Prime records the encoder reference without moving the pose.
func (e *Estimator) Prime(s drive.EncoderSample) {
	e.prev = s
	e.primed = true
}

// Update consumes the next encoder sample. The first sample only primes the
// estimator. On error neither the pose nor the reference sample changes.
func (e *Estimator) Update(s drive.EncoderSample, dt float64) (drive.Pose, error) {
	if err := drive.CheckTimeStep(dt); err != nil {
		return e.pose, err
	}
	if !e.primed {
		e.Prime(s)
		e.lastSpeeds = drive.WheelSpeeds{}
		return e.pose, nil
	}

	w, err := WheelSpeedsFromEncoders(s, e.prev, e.pulsesPerRev, dt)
	if err != nil {
		return e.pose, err
	}
	pose, err := e.advance(w, dt)
	if err != nil {
		return e.pose, err
	}

	e.prev = s
	e.pose = pose
	e.lastSpeeds = w
	return pose, nil
}

// UpdateWheelSpeeds advances the pose from already measured wheel speeds.
func (e *Estimator) UpdateWheelSpeeds(w drive.WheelSpeeds, dt float64) (drive.Pose, error) {
	pose, err := e.advance(w, dt)
	if err != nil {
		return e.pose, err
	}
	e.pose = pose
	e.lastSpeeds = w
	return pose, nil
}

func (e *Estimator) advance(w drive.WheelSpeeds, dt float64) (drive.Pose, error) {
	return IntegratePose(e.pose, kinematics.Velocity(w, e.geometry), dt)
}

func (e *Estimator) Pose() drive.Pose { return e.pose }

// MeasuredSpeeds returns the wheel speeds used by the last successful update.
func (e *Estimator) MeasuredSpeeds() drive.WheelSpeeds { return e.lastSpeeds }

// Relocalize overwrites the pose from an external fix. The encoder
// reference is kept so the next delta is still measured correctly.
func (e *Estimator) Relocalize(p drive.Pose) {
	p.Heading = drive.WrapOnce(drive.Normalize(p.Heading))
	e.pose = p
}
