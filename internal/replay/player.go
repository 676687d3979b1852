package replay

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/pipeline"
)

// Result is the trace of a replay.
type Result struct {
	Outputs []pipeline.Output
	// Skipped holds the recording indices of cycles rejected for a bad
	// time step.
	Skipped []int
	Metrics map[string]float64
}

// Player feeds a recording into a pipeline one cycle at a time.
type Player struct {
	pipeline *pipeline.Pipeline
	rec      *Recording
	logger   *zap.Logger
	next     int
	skipped  []int
}

func NewPlayer(p *pipeline.Pipeline, rec *Recording, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{pipeline: p, rec: rec, logger: logger}
}

func (pl *Player) Pipeline() *pipeline.Pipeline { return pl.pipeline }
func (pl *Player) Len() int                     { return len(pl.rec.Cycles) }
func (pl *Player) Position() int                { return pl.next }
func (pl *Player) Skipped() []int               { return pl.skipped }

// Next steps the pipeline with the next usable cycle. Cycles with a bad
// time step are logged and skipped; the pipeline state is left as it was.
// io.EOF is returned once the recording is exhausted.
func (pl *Player) Next(ctx context.Context) (pipeline.Output, error) {
	for pl.next < len(pl.rec.Cycles) {
		idx := pl.next
		pl.next++

		out, err := pl.pipeline.Step(ctx, pl.rec.Cycles[idx].Input())
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, drive.ErrInvalidTimeStep) {
			return pipeline.Output{}, err
		}
		pl.skipped = append(pl.skipped, idx)
		pl.logger.Warn("skipping cycle", zap.Int("index", idx), zap.Float64("dt", pl.rec.Cycles[idx].Dt))
	}
	return pipeline.Output{}, io.EOF
}

// Run replays rec through p and collects the outputs. A partial result is
// returned with any error other than a skipped cycle.
func Run(ctx context.Context, p *pipeline.Pipeline, rec *Recording, logger *zap.Logger) (*Result, error) {
	pl := NewPlayer(p, rec, logger)
	result := &Result{
		Outputs: make([]pipeline.Output, 0, len(rec.Cycles)),
		Metrics: make(map[string]float64),
	}

	var err error
	for {
		var out pipeline.Output
		out, err = pl.Next(ctx)
		if err != nil {
			break
		}
		result.Outputs = append(result.Outputs, out)
	}

	result.Skipped = pl.Skipped()
	for name, v := range p.Metrics() {
		result.Metrics[name] = v
	}

	if errors.Is(err, io.EOF) {
		pl.logger.Info("replay finished",
			zap.Int("cycles", len(result.Outputs)),
			zap.Int("skipped", len(result.Skipped)),
			zap.Stringer("pose", p.Pose()),
		)
		return result, nil
	}
	return result, err
}
