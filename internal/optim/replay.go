package optim

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/san-kum/diffbot/internal/config"
	"github.com/san-kum/diffbot/internal/experiment"
	"github.com/san-kum/diffbot/internal/replay"
)

// ReplayObjective scores a parameter set by applying it to a copy of base,
// replaying rec through the resulting pipeline and reading metric.
func ReplayObjective(base *config.Config, rec *replay.Recording, metric string, logger *zap.Logger) Objective {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := base.Clone()
		for name, v := range params {
			if err := cfg.SetParam(name, v); err != nil {
				return 0, err
			}
		}

		p, err := experiment.New(cfg, nil, nil).Build()
		if err != nil {
			return 0, err
		}
		result, err := replay.Run(ctx, p, rec, nil)
		if err != nil {
			return 0, err
		}
		val, ok := result.Metrics[metric]
		if !ok {
			return 0, errors.Errorf("metric %q not available in %s mode", metric, cfg.Mode)
		}
		logger.Debug("trial", zap.Any("params", params), zap.Float64(metric, val))
		return val, nil
	}
}
