// Package experiment assembles a ready-to-run control pipeline from a
// configuration.
package experiment

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/diffbot/internal/config"
	"github.com/san-kum/diffbot/internal/control"
	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/navigation"
	"github.com/san-kum/diffbot/internal/odometry"
	"github.com/san-kum/diffbot/internal/pipeline"
)

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	logger   *zap.Logger
}

func New(cfg *config.Config, registry *Registry, logger *zap.Logger) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Build validates the config and returns a fresh pipeline with the default
// metrics attached.
func (e *Experiment) Build() (*pipeline.Pipeline, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := pipeline.ParseMode(e.cfg.Mode)
	if err != nil {
		return nil, err
	}

	est, err := odometry.NewEstimator(e.cfg.Geometry, e.cfg.PulsesPerRev, e.cfg.InitialPose)
	if err != nil {
		return nil, err
	}

	var p *pipeline.Pipeline
	switch mode {
	case pipeline.ModeGoal:
		p, err = pipeline.NewGoalSeeker(est, e.cfg.Geometry, e.Seeker(), e.logger)
	default:
		b, berr := e.registry.GetBehavior(e.cfg.Wall)
		if berr != nil {
			return nil, berr
		}
		p, err = pipeline.NewWallFollower(est, e.cfg.Geometry, b, e.logger)
	}
	if err != nil {
		return nil, err
	}

	for _, m := range e.registry.DefaultMetrics(mode, e.cfg) {
		p.AddMetric(m)
	}

	e.logger.Info("pipeline ready",
		zap.String("robot", e.cfg.Robot),
		zap.Stringer("mode", mode),
		zap.Float64("wheel_radius", e.cfg.Geometry.WheelRadius),
		zap.Float64("wheel_base", e.cfg.Geometry.WheelBase),
	)
	return p, nil
}

func (e *Experiment) Seeker() *navigation.Seeker {
	g := e.cfg.Goal
	return navigation.NewSeeker(
		r2.Vec{X: g.X, Y: g.Y},
		g.Speed,
		g.Tolerance,
		control.Gains{Kp: g.Kp, Ki: g.Ki, Kd: g.Kd},
	)
}

func (e *Experiment) Geometry() drive.Geometry { return e.cfg.Geometry }
