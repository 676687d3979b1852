// Package pipeline runs one control cycle of the differential-drive core.
//
// A cycle consumes an [Input] and executes, strictly in order:
//
//  1. odometry update from the encoder sample
//  2. pose error against the goal (goal mode only)
//  3. PID step on the heading error (goal mode only), or the wall-follow
//     behavior (wall mode)
//  4. kinematic conversion to wheel speed commands
//
// A cycle either completes or returns an error without changing any state,
// so the caller can skip it and keep the prior pose and controller memory.
//
// # Thread Safety
//
// Pipeline instances are NOT thread-safe. The pose and PID state belong to
// one control loop; guard them externally if another goroutine reads them.
package pipeline
