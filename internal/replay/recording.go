package replay

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/diffbot/internal/behavior"
	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/pipeline"
)

// Recording is a captured sequence of sensor cycles.
type Recording struct {
	Name        string  `yaml:"name,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Robot       string  `yaml:"robot,omitempty"`
	Cycles      []Cycle `yaml:"cycles"`
}

// Cycle is one recorded sensor sample. Left and Right are accumulated
// encoder pulse counts.
type Cycle struct {
	Dt        float64 `yaml:"dt"`
	Left      int64   `yaml:"left"`
	Right     int64   `yaml:"right"`
	Wall      float64 `yaml:"wall,omitempty"`
	Front     float64 `yaml:"front,omitempty"`
	WallFront float64 `yaml:"wall_front,omitempty"`
	WallRear  float64 `yaml:"wall_rear,omitempty"`
}

func (c Cycle) Input() pipeline.Input {
	return pipeline.Input{
		Encoders: drive.EncoderSample{Left: c.Left, Right: c.Right},
		Readings: behavior.Readings{
			Wall:      c.Wall,
			Front:     c.Front,
			WallFront: c.WallFront,
			WallRear:  c.WallRear,
		},
		Dt: c.Dt,
	}
}

func CycleFromInput(in pipeline.Input) Cycle {
	return Cycle{
		Dt:        in.Dt,
		Left:      in.Encoders.Left,
		Right:     in.Encoders.Right,
		Wall:      in.Readings.Wall,
		Front:     in.Readings.Front,
		WallFront: in.Readings.WallFront,
		WallRear:  in.Readings.WallRear,
	}
}

// Duration is the sum of all positive time steps.
func (r *Recording) Duration() float64 {
	total := 0.0
	for _, c := range r.Cycles {
		if c.Dt > 0 {
			total += c.Dt
		}
	}
	return total
}

func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrapf(err, "parse recording %s", path)
	}
	if len(rec.Cycles) == 0 {
		return nil, errors.Errorf("recording %s has no cycles", path)
	}
	return &rec, nil
}

func Save(path string, rec *Recording) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Recorder is a pipeline observer that captures every completed cycle.
type Recorder struct {
	rec Recording
}

func NewRecorder(name, robot string) *Recorder {
	return &Recorder{rec: Recording{Name: name, Robot: robot}}
}

func (r *Recorder) OnCycle(in pipeline.Input, out pipeline.Output) {
	r.rec.Cycles = append(r.rec.Cycles, CycleFromInput(in))
}

func (r *Recorder) Recording() *Recording { return &r.rec }
