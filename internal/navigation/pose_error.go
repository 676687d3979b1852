package navigation

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/diffbot/internal/drive"
)

// Error is the offset from the current pose to the goal.
type Error struct {
	Distance float64 `json:"distance"`
	// Heading is the signed turn toward the goal, in [-π, π].
	Heading float64 `json:"heading"`
}

// Position extracts the planar position of a pose.
func Position(p drive.Pose) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// PoseError never fails. At the goal itself atan2(0, 0) = 0, so the heading
// error collapses to zero rather than becoming undefined.
func PoseError(goal r2.Vec, cur drive.Pose) Error {
	d := r2.Sub(goal, Position(cur))

	desired := math.Atan2(d.Y, d.X)
	raw := desired - cur.Heading
	return Error{
		Distance: r2.Norm(d),
		Heading:  math.Atan2(math.Sin(raw), math.Cos(raw)),
	}
}
