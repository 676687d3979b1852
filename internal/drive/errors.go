package drive

import "github.com/pkg/errors"

// Domain errors for control-cycle operations.
var (
	// ErrInvalidTimeStep indicates a non-positive dt (or pulse count) passed
	// to a time-integrating operation. The cycle must be skipped.
	ErrInvalidTimeStep = errors.New("drive: time step must be positive")

	// ErrInvalidGeometry indicates a non-positive wheel radius or wheel base.
	ErrInvalidGeometry = errors.New("drive: wheel radius and wheel base must be positive")
)

// CheckTimeStep returns ErrInvalidTimeStep unless dt > 0.
func CheckTimeStep(dt float64) error {
	if !(dt > 0) {
		return errors.Wrapf(ErrInvalidTimeStep, "dt=%g", dt)
	}
	return nil
}
