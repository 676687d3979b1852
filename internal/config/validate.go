package config

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/san-kum/diffbot/internal/behavior"
	"github.com/san-kum/diffbot/internal/drive"
)

var behaviors = map[string]bool{"constant": true, "obstacle": true, "parallel": true}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var errs error
	errs = multierr.Append(errs, c.Geometry.Validate())
	errs = multierr.Append(errs, drive.CheckTimeStep(c.Dt))

	if c.Mode != "wall" && c.Mode != "goal" {
		errs = multierr.Append(errs, errors.Errorf("mode must be wall or goal, got %q", c.Mode))
	}
	if c.PulsesPerRev <= 0 {
		errs = multierr.Append(errs, errors.Errorf("pulses_per_rev must be positive, got %d", c.PulsesPerRev))
	}
	if c.Duration <= 0 {
		errs = multierr.Append(errs, errors.Errorf("duration must be positive, got %g", c.Duration))
	}
	if !c.InitialPose.IsValid() {
		errs = multierr.Append(errs, errors.Errorf("initial_pose is not finite: %v", c.InitialPose))
	}

	if c.Goal.Tolerance < 0 {
		errs = multierr.Append(errs, errors.Errorf("goal.tolerance must not be negative, got %g", c.Goal.Tolerance))
	}

	if !behaviors[c.Wall.Behavior] {
		errs = multierr.Append(errs, errors.Errorf("unknown wall.behavior %q", c.Wall.Behavior))
	}
	if _, err := behavior.ParseSide(c.Wall.Side); err != nil {
		errs = multierr.Append(errs, err)
	}
	if c.Wall.Behavior != "constant" && !(c.Wall.MaxRange > c.Wall.MinObstacle) {
		errs = multierr.Append(errs, errors.Errorf("wall.max_range (%g) must exceed wall.min_obstacle (%g)",
			c.Wall.MaxRange, c.Wall.MinObstacle))
	}

	if c.Telemetry.Enabled && c.Telemetry.Broker == "" {
		errs = multierr.Append(errs, errors.New("telemetry.broker is required when telemetry is enabled"))
	}
	return errs
}
