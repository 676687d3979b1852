package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/pipeline"
)

// Series extracts one value per output.
func Series(outs []pipeline.Output, f func(pipeline.Output) float64) []float64 {
	vals := make([]float64, len(outs))
	for i, out := range outs {
		vals[i] = f(out)
	}
	return vals
}

func Heading(out pipeline.Output) float64 { return out.Pose.Heading }
func Linear(out pipeline.Output) float64  { return out.Velocity.Linear }
func Angular(out pipeline.Output) float64 { return out.Velocity.Angular }
func LeftWheel(out pipeline.Output) float64 {
	return out.Wheels.Left
}
func RightWheel(out pipeline.Output) float64 {
	return out.Wheels.Right
}

// Chart renders vals as an ASCII line chart.
func Chart(vals []float64, width, height int, caption string) string {
	if len(vals) == 0 {
		return ""
	}
	return asciigraph.Plot(vals,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// WheelChart plots left and right wheel commands on shared axes.
func WheelChart(outs []pipeline.Output, width, height int) string {
	if len(outs) == 0 {
		return ""
	}
	return asciigraph.PlotMany(
		[][]float64{Series(outs, LeftWheel), Series(outs, RightWheel)},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption("wheel speed [rad/s] (left blue, right red)"),
	)
}

// Trajectory draws the estimated path on a Braille canvas of w x h cells.
func Trajectory(poses []drive.Pose, w, h int) string {
	c := NewCanvas(w, h)
	c.DrawPath(Fit(c, poses), poses)
	return c.String()
}

// Report is the static summary printed by the plot command.
func Report(outs []pipeline.Output, width int) string {
	var b strings.Builder
	poses := make([]drive.Pose, len(outs))
	for i, out := range outs {
		poses[i] = out.Pose
	}
	b.WriteString(Trajectory(poses, width/2, 12))
	b.WriteString("\n")
	b.WriteString(Chart(Series(outs, Heading), width, 8, "heading [rad]"))
	b.WriteString("\n\n")
	b.WriteString(WheelChart(outs, width, 8))
	b.WriteString("\n")
	return b.String()
}
