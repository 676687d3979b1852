package metrics

import (
	"math"

	"github.com/san-kum/diffbot/internal/pipeline"
)

// WheelEffort is the mean of |left| + |right| commanded wheel speed.
type WheelEffort struct {
	name    string
	sum     float64
	samples int
}

func NewWheelEffort() *WheelEffort {
	return &WheelEffort{
		name: "wheel_effort",
	}
}

func (w *WheelEffort) Name() string {
	return w.name
}

func (w *WheelEffort) Observe(in pipeline.Input, out pipeline.Output) {
	w.sum += math.Abs(out.Wheels.Left) + math.Abs(out.Wheels.Right)
	w.samples++
}

func (w *WheelEffort) Value() float64 {
	if w.samples == 0 {
		return 0
	}
	return w.sum / float64(w.samples)
}

func (w *WheelEffort) Reset() {
	w.sum = 0
	w.samples = 0
}
