package metrics

import (
	"math"

	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/pipeline"
)

// PathLength sums the straight-line distance between consecutive poses.
type PathLength struct {
	last   drive.Pose
	seen   bool
	length float64
}

func NewPathLength() *PathLength {
	return &PathLength{}
}

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(in pipeline.Input, out pipeline.Output) {
	if p.seen {
		p.length += math.Hypot(out.Pose.X-p.last.X, out.Pose.Y-p.last.Y)
	}
	p.last = out.Pose
	p.seen = true
}

func (p *PathLength) Value() float64 { return p.length }

func (p *PathLength) Reset() {
	p.last = drive.Pose{}
	p.seen = false
	p.length = 0
}
