package pipeline

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/diffbot/internal/behavior"
	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/kinematics"
	"github.com/san-kum/diffbot/internal/navigation"
	"github.com/san-kum/diffbot/internal/odometry"
)

type Pipeline struct {
	geometry  drive.Geometry
	estimator *odometry.Estimator
	mode      Mode
	wall      behavior.Behavior
	seeker    *navigation.Seeker
	logger    *zap.Logger

	metrics   []Metric
	observers []Observer

	cycle int
	t     float64
}

// NewWallFollower builds a pipeline whose velocity comes from b.
func NewWallFollower(est *odometry.Estimator, g drive.Geometry, b behavior.Behavior, logger *zap.Logger) (*Pipeline, error) {
	if b == nil {
		return nil, errors.New("pipeline: wall mode needs a behavior")
	}
	return newPipeline(est, g, ModeWall, logger, func(p *Pipeline) { p.wall = b })
}

// NewGoalSeeker builds a pipeline whose velocity comes from s.
func NewGoalSeeker(est *odometry.Estimator, g drive.Geometry, s *navigation.Seeker, logger *zap.Logger) (*Pipeline, error) {
	if s == nil {
		return nil, errors.New("pipeline: goal mode needs a seeker")
	}
	return newPipeline(est, g, ModeGoal, logger, func(p *Pipeline) { p.seeker = s })
}

func newPipeline(est *odometry.Estimator, g drive.Geometry, mode Mode, logger *zap.Logger, apply func(*Pipeline)) (*Pipeline, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if est == nil {
		return nil, errors.New("pipeline: estimator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		geometry:  g,
		estimator: est,
		mode:      mode,
		logger:    logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	apply(p)
	return p, nil
}

func (p *Pipeline) AddMetric(m Metric)     { p.metrics = append(p.metrics, m) }
func (p *Pipeline) AddObserver(o Observer) { p.observers = append(p.observers, o) }

func (p *Pipeline) Mode() Mode       { return p.mode }
func (p *Pipeline) Pose() drive.Pose { return p.estimator.Pose() }
func (p *Pipeline) Cycles() int      { return p.cycle }
func (p *Pipeline) Time() float64    { return p.t }

// Seeker is nil in wall mode.
func (p *Pipeline) Seeker() *navigation.Seeker { return p.seeker }

// SetGoal retargets the seeker and resets its controller.
func (p *Pipeline) SetGoal(goal r2.Vec) error {
	if p.seeker == nil {
		return errors.New("pipeline: not in goal mode")
	}
	p.seeker.SetGoal(goal)
	return nil
}

// Step runs one cycle. dt is validated before anything is touched, so a
// failed cycle leaves pose, encoder reference and controller memory as they
// were.
func (p *Pipeline) Step(ctx context.Context, in Input) (Output, error) {
	select {
	case <-ctx.Done():
		return Output{}, ctx.Err()
	default:
	}

	if err := drive.CheckTimeStep(in.Dt); err != nil {
		p.logger.Debug("cycle rejected", zap.Int("cycle", p.cycle), zap.Float64("dt", in.Dt), zap.Error(err))
		return Output{}, &CycleError{Cycle: p.cycle, Time: p.t, Wrapped: err}
	}

	pose, err := p.estimator.Update(in.Encoders, in.Dt)
	if err != nil {
		return Output{}, &CycleError{Cycle: p.cycle, Time: p.t, Wrapped: err}
	}

	out := Output{
		Cycle:    p.cycle,
		Time:     p.t + in.Dt,
		Pose:     pose,
		Measured: p.estimator.MeasuredSpeeds(),
	}

	switch p.mode {
	case ModeGoal:
		v, e, err := p.seeker.Command(pose, in.Dt)
		if err != nil {
			return Output{}, &CycleError{Cycle: p.cycle, Time: p.t, Wrapped: err}
		}
		out.Velocity, out.GoalError, out.Arrived = v, e, p.seeker.Arrived()
	default:
		out.Velocity = p.wall.Velocity(in.Readings)
	}

	out.Wheels = kinematics.WheelSpeeds(out.Velocity, p.geometry)

	p.cycle++
	p.t = out.Time

	for _, m := range p.metrics {
		m.Observe(in, out)
	}
	for _, obs := range p.observers {
		obs.OnCycle(in, out)
	}

	p.logger.Debug("cycle",
		zap.Int("cycle", out.Cycle),
		zap.Stringer("pose", out.Pose),
		zap.Float64("linear", out.Velocity.Linear),
		zap.Float64("angular", out.Velocity.Angular),
	)

	return out, nil
}

// Metrics returns the current value of every registered metric.
func (p *Pipeline) Metrics() map[string]float64 {
	values := make(map[string]float64, len(p.metrics))
	for _, m := range p.metrics {
		values[m.Name()] = m.Value()
	}
	return values
}

func (p *Pipeline) ResetMetrics() {
	for _, m := range p.metrics {
		m.Reset()
	}
}
