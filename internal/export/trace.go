// Package export writes control traces as CSV, JSON or SVG.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/diffbot/internal/pipeline"
)

var csvHeader = []string{
	"cycle", "time", "x", "y", "heading",
	"linear", "angular", "left", "right",
	"measured_left", "measured_right", "goal_distance", "goal_heading",
}

// WriteCSV writes one row per output.
func WriteCSV(w io.Writer, outs []pipeline.Output) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, out := range outs {
		row := []string{
			strconv.Itoa(out.Cycle), f(out.Time),
			f(out.Pose.X), f(out.Pose.Y), f(out.Pose.Heading),
			f(out.Velocity.Linear), f(out.Velocity.Angular),
			f(out.Wheels.Left), f(out.Wheels.Right),
			f(out.Measured.Left), f(out.Measured.Right),
			f(out.GoalError.Distance), f(out.GoalError.Heading),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type Sample struct {
	Cycle   int     `json:"cycle"`
	Time    float64 `json:"time"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
	Linear  float64 `json:"linear"`
	Angular float64 `json:"angular"`
	Left    float64 `json:"left"`
	Right   float64 `json:"right"`
	Arrived bool    `json:"arrived,omitempty"`
}

type Trace struct {
	Name    string             `json:"name"`
	Robot   string             `json:"robot,omitempty"`
	Mode    string             `json:"mode"`
	Cycles  int                `json:"cycles"`
	Skipped []int              `json:"skipped,omitempty"`
	Metrics map[string]float64 `json:"metrics"`
	Samples []Sample           `json:"samples"`
}

func NewTrace(name, robot string, mode pipeline.Mode, outs []pipeline.Output) *Trace {
	t := &Trace{
		Name:    name,
		Robot:   robot,
		Mode:    mode.String(),
		Cycles:  len(outs),
		Metrics: make(map[string]float64),
		Samples: make([]Sample, len(outs)),
	}
	for i, out := range outs {
		t.Samples[i] = Sample{
			Cycle:   out.Cycle,
			Time:    out.Time,
			X:       out.Pose.X,
			Y:       out.Pose.Y,
			Heading: out.Pose.Heading,
			Linear:  out.Velocity.Linear,
			Angular: out.Velocity.Angular,
			Left:    out.Wheels.Left,
			Right:   out.Wheels.Right,
			Arrived: out.Arrived,
		}
	}
	return t
}

func WriteJSON(w io.Writer, t *Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
