// Package control provides the PID feedback law used by the goal seeker.
//
// The law is available in two shapes:
//
//   - [Step]: a pure function over caller-owned [State]
//   - [PID]: a small stateful wrapper that owns its gains and state
//
// # Usage
//
//	pid := control.NewPID(control.Gains{Kp: 0.5, Ki: 0.1, Kd: 0.01})
//	w, err := pid.Next(headingError, dt)
//	// on a goal change:
//	pid.Reset()
//
// The integral term is not clamped. Long runs against an unreachable
// setpoint accumulate without bound.
//
// [PID] implements GetParams/SetParam for live tuning.
package control
