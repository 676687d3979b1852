package config

import (
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const EnvPrefix = "DIFFBOT_"

// ApplyEnv loads envFile (".env" when empty) if it exists, then overrides
// fields from DIFFBOT_* variables. Variables already set in the process
// environment win over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "load %s", envFile)
	}

	var errs error
	setString(&c.Mode, "MODE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Wall.Behavior, "WALL_BEHAVIOR")
	setString(&c.Wall.Side, "WALL_SIDE")
	setString(&c.Telemetry.Broker, "MQTT_BROKER")
	setString(&c.Telemetry.ClientID, "MQTT_CLIENT_ID")
	setString(&c.Telemetry.Prefix, "MQTT_PREFIX")
	errs = multierr.Append(errs, setBool(&c.Telemetry.Enabled, "MQTT_ENABLED"))
	errs = multierr.Append(errs, setFloat(&c.Dt, "DT"))
	errs = multierr.Append(errs, setFloat(&c.Geometry.WheelRadius, "WHEEL_RADIUS"))
	errs = multierr.Append(errs, setFloat(&c.Geometry.WheelBase, "WHEEL_BASE"))
	errs = multierr.Append(errs, setFloat(&c.Goal.X, "GOAL_X"))
	errs = multierr.Append(errs, setFloat(&c.Goal.Y, "GOAL_Y"))
	return errs
}

func getEnv(key string) (string, bool) {
	v := os.Getenv(EnvPrefix + key)
	return v, v != ""
}

func setString(dst *string, key string) {
	if v, ok := getEnv(key); ok {
		*dst = v
	}
}

func setFloat(dst *float64, key string) error {
	v, ok := getEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.Wrapf(err, "%s%s", EnvPrefix, key)
	}
	*dst = f
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := getEnv(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.Wrapf(err, "%s%s", EnvPrefix, key)
	}
	*dst = b
	return nil
}
