package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/diffbot/internal/config"
	"github.com/san-kum/diffbot/internal/logging"
)

var (
	configFile string
	preset     string
	envFile    string
	logLevel   string

	format   string
	mqttOn   bool
	interval int
	params   []string
	metric   string

	poseX, poseY, poseHeading float64
	prevErr, integral, stepDt float64
	kp, ki, kd                float64
	behaviorName, side        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "diffbot",
		Short:         "differential-drive robot control core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "robot preset (see 'diffbot presets')")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file with DIFFBOT_* overrides (default .env)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	wheelsCmd := &cobra.Command{
		Use:   "wheels [linear] [angular]",
		Short: "wheel speeds for a body velocity",
		Args:  cobra.ExactArgs(2),
		RunE:  runWheels,
	}

	velocityCmd := &cobra.Command{
		Use:   "velocity [left] [right]",
		Short: "body velocity for wheel speeds",
		Args:  cobra.ExactArgs(2),
		RunE:  runVelocity,
	}

	pidCmd := &cobra.Command{
		Use:   "pid [error]",
		Short: "one PID step",
		Args:  cobra.ExactArgs(1),
		RunE:  runPID,
	}
	pidCmd.Flags().Float64Var(&prevErr, "prev", 0, "previous error")
	pidCmd.Flags().Float64Var(&integral, "integral", 0, "accumulated integral")
	pidCmd.Flags().Float64Var(&stepDt, "dt", 0, "time step (default from config)")
	pidCmd.Flags().Float64Var(&kp, "kp", 0, "proportional gain (default from config)")
	pidCmd.Flags().Float64Var(&ki, "ki", 0, "integral gain (default from config)")
	pidCmd.Flags().Float64Var(&kd, "kd", 0, "derivative gain (default from config)")

	wallCmd := &cobra.Command{
		Use:   "wallfollow [wall] [front]",
		Short: "wall-follow command for range readings",
		Args:  cobra.RangeArgs(1, 3),
		RunE:  runWallFollow,
	}
	wallCmd.Flags().StringVar(&behaviorName, "behavior", "", "constant, obstacle or parallel (default from config)")
	wallCmd.Flags().StringVar(&side, "side", "", "left or right (default from config)")

	goalCmd := &cobra.Command{
		Use:   "goal [x] [y]",
		Short: "pose error and command toward a goal",
		Args:  cobra.ExactArgs(2),
		RunE:  runGoal,
	}
	goalCmd.Flags().Float64Var(&poseX, "x", 0, "current x [m]")
	goalCmd.Flags().Float64Var(&poseY, "y", 0, "current y [m]")
	goalCmd.Flags().Float64Var(&poseHeading, "heading", 0, "current heading [rad]")

	replayCmd := &cobra.Command{
		Use:   "replay [recording]",
		Short: "run the pipeline over a recording",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().StringVar(&format, "format", "text", "output format: text, csv, json or svg")
	replayCmd.Flags().BoolVar(&mqttOn, "mqtt", false, "publish every cycle to the configured broker")

	plotCmd := &cobra.Command{
		Use:   "plot [recording]",
		Short: "plot trajectory, heading and wheel commands of a replay",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	liveCmd := &cobra.Command{
		Use:   "live [recording]",
		Short: "step through a recording in a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&interval, "interval", 50, "milliseconds per tick")
	liveCmd.Flags().BoolVar(&mqttOn, "mqtt", false, "publish every cycle to the configured broker")

	compareCmd := &cobra.Command{
		Use:   "compare [recording]",
		Short: "replay a recording through every wall-follow behavior",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompare,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [recording]",
		Short: "grid search parameters against a replay metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().StringArrayVar(&params, "param", nil, "name=lo:hi:n, repeatable (e.g. wall.kp=0.5:2:4)")
	tuneCmd.Flags().StringVar(&metric, "metric", "wheel_effort", "metric to minimize")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list robot presets",
		Args:  cobra.NoArgs,
		RunE:  runPresets,
	}

	rootCmd.AddCommand(wheelsCmd, velocityCmd, pidCmd, wallCmd, goalCmd,
		replayCmd, plotCmd, liveCmd, compareCmd, tuneCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves preset, file, env and flags, in that order.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setup loads the config and builds a logger for it.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("config loaded",
		zap.String("robot", cfg.Robot),
		zap.String("mode", cfg.Mode),
		zap.String("file", configFile),
	)
	return cfg, logger, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
