package experiment

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/san-kum/diffbot/internal/behavior"
	"github.com/san-kum/diffbot/internal/config"
	"github.com/san-kum/diffbot/internal/metrics"
	"github.com/san-kum/diffbot/internal/pipeline"
)

type BehaviorFactory func(w config.WallConfig, side behavior.Side) behavior.Behavior

// Registry maps wall-follow behavior names to constructors.
type Registry struct {
	behaviors map[string]BehaviorFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		behaviors: make(map[string]BehaviorFactory),
	}

	r.behaviors["constant"] = func(w config.WallConfig, side behavior.Side) behavior.Behavior {
		return behavior.ConstantSpeed{Speed: w.Speed, Kp: w.Kp, Desired: w.Desired, Side: side}
	}
	r.behaviors["obstacle"] = func(w config.WallConfig, side behavior.Side) behavior.Behavior {
		return behavior.ObstacleAware{
			MaxSpeed:    w.MaxSpeed,
			Kp:          w.Kp,
			Desired:     w.Desired,
			MinObstacle: w.MinObstacle,
			MaxRange:    w.MaxRange,
			Side:        side,
		}
	}
	r.behaviors["parallel"] = func(w config.WallConfig, side behavior.Side) behavior.Behavior {
		return behavior.ParallelCorrecting{
			MaxSpeed:    w.MaxSpeed,
			Kp:          w.Kp,
			Kp2:         w.Kp2,
			Desired:     w.Desired,
			MinObstacle: w.MinObstacle,
			MaxRange:    w.MaxRange,
			Side:        side,
		}
	}

	return r
}

func (r *Registry) Register(name string, f BehaviorFactory) {
	r.behaviors[name] = f
}

func (r *Registry) GetBehavior(w config.WallConfig) (behavior.Behavior, error) {
	fn, ok := r.behaviors[w.Behavior]
	if !ok {
		return nil, errors.Errorf("unknown behavior: %s", w.Behavior)
	}
	side, err := behavior.ParseSide(w.Side)
	if err != nil {
		return nil, err
	}
	return fn(w, side), nil
}

func (r *Registry) ListBehaviors() []string {
	names := make([]string, 0, len(r.behaviors))
	for name := range r.behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the metrics that make sense for mode.
func (r *Registry) DefaultMetrics(mode pipeline.Mode, cfg *config.Config) []pipeline.Metric {
	ms := []pipeline.Metric{
		metrics.NewWheelEffort(),
		metrics.NewPathLength(),
	}
	switch mode {
	case pipeline.ModeGoal:
		ms = append(ms, metrics.NewHeadingError())
	case pipeline.ModeWall:
		if cfg.Wall.Behavior == "parallel" {
			ms = append(ms, metrics.NewPairedWallError(cfg.Wall.Desired))
		} else {
			ms = append(ms, metrics.NewWallError(cfg.Wall.Desired))
		}
	}
	return ms
}
