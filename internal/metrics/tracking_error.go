package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/diffbot/internal/pipeline"
)

// HeadingError is the RMS heading error toward the goal. Only meaningful for
// goal-mode pipelines.
type HeadingError struct {
	squares []float64
}

func NewHeadingError() *HeadingError {
	return &HeadingError{squares: make([]float64, 0, 256)}
}

func (h *HeadingError) Name() string { return "heading_rms" }

func (h *HeadingError) Observe(in pipeline.Input, out pipeline.Output) {
	h.squares = append(h.squares, out.GoalError.Heading*out.GoalError.Heading)
}

func (h *HeadingError) Value() float64 {
	if len(h.squares) == 0 {
		return 0
	}
	return math.Sqrt(stat.Mean(h.squares, nil))
}

func (h *HeadingError) Reset() { h.squares = h.squares[:0] }

// WallError is the RMS deviation of the side range reading from a desired
// wall distance. A paired WallError uses the mean of the front and rear side
// readings instead of the single side sensor.
type WallError struct {
	desired float64
	paired  bool
	errs    []float64
}

func NewWallError(desired float64) *WallError {
	return &WallError{desired: desired, errs: make([]float64, 0, 256)}
}

// NewPairedWallError measures the paired side sensors used by the parallel
// behavior.
func NewPairedWallError(desired float64) *WallError {
	w := NewWallError(desired)
	w.paired = true
	return w
}

func (w *WallError) Name() string { return "wall_rms" }

func (w *WallError) Observe(in pipeline.Input, out pipeline.Output) {
	d := in.Readings.Wall
	if w.paired {
		d = (in.Readings.WallFront + in.Readings.WallRear) / 2
	}
	w.errs = append(w.errs, d-w.desired)
}

func (w *WallError) Value() float64 {
	if len(w.errs) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(w.errs, nil)
	return math.Sqrt(mean*mean + std*std)
}

func (w *WallError) Reset() { w.errs = w.errs[:0] }
