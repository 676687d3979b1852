// Package odometry tracks robot pose by dead reckoning from wheel motion.
//
// The free functions are pure: [WheelSpeedsFromEncoders] derives wheel
// angular speeds from two consecutive encoder samples and [IntegratePose]
// advances a pose by one heading-ahead Euler step. [Estimator] owns a live
// pose and the previous encoder sample for callers that want the state kept
// for them.
package odometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/san-kum/diffbot/internal/drive"
)

// WheelSpeedsFromEncoders converts the pulse delta between two samples into
// wheel angular speeds over dt.
func WheelSpeedsFromEncoders(cur, prev drive.EncoderSample, pulsesPerRev int, dt float64) (drive.WheelSpeeds, error) {
	if err := drive.CheckTimeStep(dt); err != nil {
		return drive.WheelSpeeds{}, err
	}
	if pulsesPerRev <= 0 {
		return drive.WheelSpeeds{}, errors.Wrapf(drive.ErrInvalidTimeStep, "pulses per revolution=%d", pulsesPerRev)
	}

	radPerPulse := 2 * math.Pi / float64(pulsesPerRev)
	return drive.WheelSpeeds{
		Left:  radPerPulse * float64(cur.Left-prev.Left) / dt,
		Right: radPerPulse * float64(cur.Right-prev.Right) / dt,
	}, nil
}

// IntegratePose advances prior by one step. The heading is updated first and
// the translation uses the new heading; trajectories depend on this order.
func IntegratePose(prior drive.Pose, v drive.Velocity, dt float64) (drive.Pose, error) {
	if err := drive.CheckTimeStep(dt); err != nil {
		return prior, err
	}

	heading := drive.WrapOnce(prior.Heading + v.Angular*dt)
	return drive.Pose{
		X:       prior.X + v.Linear*math.Cos(heading)*dt,
		Y:       prior.Y + v.Linear*math.Sin(heading)*dt,
		Heading: heading,
	}, nil
}
