// Package kinematics maps between robot body velocity and wheel angular
// speeds for a differential-drive base.
//
// Both directions are pure functions of their inputs and a validated
// [drive.Geometry]; they are safe for concurrent use.
package kinematics

import "github.com/san-kum/diffbot/internal/drive"

// WheelSpeeds converts a desired body velocity into wheel angular speeds.
//
//	right = (2v + Bω) / 2R
//	left  = (2v - Bω) / 2R
func WheelSpeeds(v drive.Velocity, g drive.Geometry) drive.WheelSpeeds {
	twoR := 2 * g.WheelRadius
	return drive.WheelSpeeds{
		Left:  (2*v.Linear - g.WheelBase*v.Angular) / twoR,
		Right: (2*v.Linear + g.WheelBase*v.Angular) / twoR,
	}
}

// Velocity is the inverse of WheelSpeeds.
func Velocity(w drive.WheelSpeeds, g drive.Geometry) drive.Velocity {
	return drive.Velocity{
		Linear:  g.WheelRadius / 2 * (w.Right + w.Left),
		Angular: g.WheelRadius / g.WheelBase * (w.Right - w.Left),
	}
}
