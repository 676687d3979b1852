// Package drive defines the shared vocabulary of the differential-drive
// control core.
//
// Every other package in the module exchanges these types:
//
//   - [Pose]: position and heading in a fixed world frame
//   - [Velocity]: linear/angular robot velocity
//   - [WheelSpeeds]: left/right wheel angular speed
//   - [Geometry]: wheel radius and wheel base, validated at construction
//   - [EncoderSample]: accumulated encoder pulse counts
//
// Units are SI throughout (meters, radians, seconds). No conversion happens
// inside the core; callers convert at the boundary.
//
// # Thread Safety
//
// All types are plain values. A live [Pose] belongs to exactly one control
// loop; sharing it across goroutines needs external synchronization.
package drive
