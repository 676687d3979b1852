// Package navigation steers the robot toward a single goal point.
//
// [PoseError] compares the current pose with a goal and yields the distance
// and signed heading error. [Seeker] feeds the heading error through a PID
// controller to produce the desired body velocity, and stops once the goal
// is within tolerance.
//
// Path planning beyond one waypoint is out of scope.
package navigation
