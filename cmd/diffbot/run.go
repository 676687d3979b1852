package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/diffbot/internal/config"
	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/experiment"
	"github.com/san-kum/diffbot/internal/export"
	"github.com/san-kum/diffbot/internal/optim"
	"github.com/san-kum/diffbot/internal/pipeline"
	"github.com/san-kum/diffbot/internal/replay"
	"github.com/san-kum/diffbot/internal/telemetry"
	"github.com/san-kum/diffbot/internal/viz"
)

// session is a loaded config and recording with a pipeline built for them.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	rec    *replay.Recording
	p      *pipeline.Pipeline
	pub    *telemetry.MQTTPublisher
}

// openSession prepares a session for the recording at path. A quiet
// session logs nothing.
func openSession(ctx context.Context, path string, quiet bool) (*session, error) {
	cfg, logger, err := setup()
	if err != nil {
		return nil, err
	}
	if quiet {
		logger = zap.NewNop()
	}
	rec, err := replay.Load(path)
	if err != nil {
		return nil, err
	}
	p, err := experiment.New(cfg, nil, logger).Build()
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger, rec: rec, p: p}

	if mqttOn || cfg.Telemetry.Enabled {
		s.pub = telemetry.NewMQTTPublisher(telemetry.MQTTOptions{
			Broker:   cfg.Telemetry.Broker,
			ClientID: cfg.Telemetry.ClientID,
		}, logger)
		if err := s.pub.Connect(ctx); err != nil {
			return nil, err
		}
		p.AddObserver(telemetry.NewSink(s.pub, cfg.Telemetry.Prefix, logger))
	}
	return s, nil
}

func (s *session) Close() {
	if s.pub != nil {
		s.pub.Close()
	}
	_ = s.logger.Sync()
}

var replayFormats = []string{"text", "csv", "json", "svg"}

func checkFormat(name string) error {
	for _, f := range replayFormats {
		if f == name {
			return nil
		}
	}
	return fmt.Errorf("unknown format: %s (available: %s)", name, strings.Join(replayFormats, ", "))
}

func runReplay(cmd *cobra.Command, args []string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	s, err := openSession(ctx, args[0], false)
	if err != nil {
		return err
	}
	defer s.Close()
	p := s.p

	result, err := replay.Run(ctx, p, s.rec, s.logger)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return export.WriteCSV(os.Stdout, result.Outputs)
	case "json":
		trace := export.NewTrace(s.rec.Name, s.cfg.Robot, p.Mode(), result.Outputs)
		trace.Skipped = result.Skipped
		trace.Metrics = result.Metrics
		return export.WriteJSON(os.Stdout, trace)
	case "svg":
		poses := make([]drive.Pose, len(result.Outputs))
		for i, out := range result.Outputs {
			poses[i] = out.Pose
		}
		_, err := fmt.Fprint(os.Stdout, export.TrajectorySVG(poses, 800, 600, "#00ccff"))
		return err
	default:
		printSummary(result, p)
		return nil
	}
}

func printSummary(result *replay.Result, p *pipeline.Pipeline) {
	fmt.Printf("cycles:  %d (skipped %d)\n", len(result.Outputs), len(result.Skipped))
	fmt.Printf("time:    %.3fs\n", p.Time())
	fmt.Printf("pose:    %s\n", p.Pose())
	if n := len(result.Outputs); n > 0 {
		last := result.Outputs[n-1]
		fmt.Printf("command: linear %.4f m/s, angular %.4f rad/s\n", last.Velocity.Linear, last.Velocity.Angular)
		fmt.Printf("wheels:  left %.4f rad/s, right %.4f rad/s\n", last.Wheels.Left, last.Wheels.Right)
		if p.Mode() == pipeline.ModeGoal {
			fmt.Printf("goal:    distance %.4f m, arrived %t\n", last.GoalError.Distance, last.Arrived)
		}
	}
	printMetrics(result.Metrics)
}

func printMetrics(metrics map[string]float64) {
	if len(metrics) == 0 {
		return
	}
	fmt.Println("metrics:")
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-14s %.6f\n", name, metrics[name])
	}
}

func runPlot(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	s, err := openSession(ctx, args[0], false)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := replay.Run(ctx, s.p, s.rec, s.logger)
	if err != nil {
		return err
	}
	if len(result.Outputs) == 0 {
		fmt.Println("no cycles to plot")
		return nil
	}
	fmt.Print(viz.Report(result.Outputs, 70))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	s, err := openSession(ctx, args[0], true)
	if err != nil {
		return err
	}
	defer s.Close()

	title := fmt.Sprintf("diffbot %s · %s", s.cfg.Robot, s.rec.Name)
	return viz.Run(ctx, replay.NewPlayer(s.p, s.rec, s.logger), title, time.Duration(interval)*time.Millisecond)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	rec, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	cmp := replay.NewComparison(logger)
	for _, name := range registry.ListBehaviors() {
		member := cfg.Clone()
		member.Mode = "wall"
		member.Wall.Behavior = name
		cmp.Add(name, experiment.New(member, registry, logger).Build)
	}

	results, err := cmp.Run(ctx, rec)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BEHAVIOR\tCYCLES\tSKIPPED\tPATH\tEFFORT\tWALL_RMS\tFINAL POSE")
	for _, name := range cmp.Names() {
		r := results[name]
		final := "-"
		if n := len(r.Outputs); n > 0 {
			final = r.Outputs[n-1].Pose.String()
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\t%.4f\t%.4f\t%s\n",
			name,
			len(r.Outputs),
			len(r.Skipped),
			r.Metrics["path_length"],
			r.Metrics["wheel_effort"],
			r.Metrics["wall_rms"],
			final,
		)
	}
	return w.Flush()
}

// parseRange reads "name=lo:hi:n" or "name=v1,v2,...".
func parseRange(spec string) (string, []float64, error) {
	name, values, ok := strings.Cut(spec, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("bad --param %q, want name=lo:hi:n", spec)
	}

	if parts := strings.Split(values, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return "", nil, fmt.Errorf("bad range in --param %q", spec)
		}
		return name, optim.Linspace(lo, hi, n), nil
	}

	vals, err := parseFloats(strings.Split(values, ","))
	if err != nil {
		return "", nil, fmt.Errorf("bad values in --param %q: %w", spec, err)
	}
	return name, vals, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	if len(params) == 0 {
		return fmt.Errorf("at least one --param is required (tunable: %s)", strings.Join(config.ParamNames(), ", "))
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	rec, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(params))
	ranges := make([][]float64, 0, len(params))
	for _, spec := range params {
		name, vals, err := parseRange(spec)
		if err != nil {
			return err
		}
		if _, err := cfg.GetParam(name); err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}

	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	logger.Info("grid search", zap.Strings("params", names), zap.Int("trials", gs.Size()), zap.String("metric", metric))

	trials, err := gs.Search(ctx, optim.ReplayObjective(cfg, rec, metric, logger))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(append(append([]string{}, names...), strings.ToUpper(metric)), "\t"))
	for _, t := range trials {
		row := make([]string, 0, len(names)+1)
		for _, name := range names {
			row = append(row, strconv.FormatFloat(t.Params[name], 'g', 6, 64))
		}
		row = append(row, strconv.FormatFloat(t.Value, 'f', 6, 64))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tWHEEL_RADIUS\tWHEEL_BASE\tPULSES/REV\tDT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%d\t%.3f\n",
			name, p.Geometry.WheelRadius, p.Geometry.WheelBase, p.PulsesPerRev, p.Dt)
	}
	return w.Flush()
}
