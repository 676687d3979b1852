package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/diffbot/internal/behavior"
	"github.com/san-kum/diffbot/internal/control"
	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/experiment"
	"github.com/san-kum/diffbot/internal/kinematics"
)

func parseFloats(args []string) ([]float64, error) {
	vals := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return vals, nil
}

func runWheels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}

	w := kinematics.WheelSpeeds(drive.Velocity{Linear: vals[0], Angular: vals[1]}, cfg.Geometry)
	fmt.Printf("left:  %.6f rad/s\nright: %.6f rad/s\n", w.Left, w.Right)
	return nil
}

func runVelocity(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}

	v := kinematics.Velocity(drive.WheelSpeeds{Left: vals[0], Right: vals[1]}, cfg.Geometry)
	fmt.Printf("linear:  %.6f m/s\nangular: %.6f rad/s\n", v.Linear, v.Angular)
	return nil
}

func runPID(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}

	gains := control.Gains{Kp: cfg.Goal.Kp, Ki: cfg.Goal.Ki, Kd: cfg.Goal.Kd}
	if cmd.Flags().Changed("kp") {
		gains.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		gains.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		gains.Kd = kd
	}
	dt := cfg.Dt
	if cmd.Flags().Changed("dt") {
		dt = stepDt
	}

	out, err := control.Step(vals[0], dt, gains, control.State{PreviousError: prevErr, Integral: integral})
	if err != nil {
		return err
	}
	fmt.Printf("output:   %.6f\nintegral: %.6f\nprevious: %.6f\n", out.Value, out.State.Integral, out.State.PreviousError)
	return nil
}

func runWallFollow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}

	if behaviorName != "" {
		cfg.Wall.Behavior = behaviorName
	}
	if side != "" {
		cfg.Wall.Side = side
	}
	b, err := experiment.NewRegistry().GetBehavior(cfg.Wall)
	if err != nil {
		return err
	}

	// wall [front] or, for the parallel behavior, wall_front [wall_rear [front]]
	r := behavior.Readings{Wall: vals[0], Front: cfg.Wall.MaxRange, WallFront: vals[0], WallRear: vals[0]}
	if b.Name() == "parallel" {
		if len(vals) >= 2 {
			r.WallRear = vals[1]
			r.Wall = (vals[0] + vals[1]) / 2
		}
		if len(vals) == 3 {
			r.Front = vals[2]
		}
	} else if len(vals) >= 2 {
		r.Front = vals[1]
	}

	v := b.Velocity(r)
	fmt.Printf("behavior: %s (%s wall)\nlinear:   %.6f m/s\nangular:  %.6f rad/s\n", b.Name(), cfg.Wall.Side, v.Linear, v.Angular)
	return nil
}

func runGoal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}

	cfg.Goal.X, cfg.Goal.Y = vals[0], vals[1]
	pose := drive.Pose{X: poseX, Y: poseY, Heading: poseHeading}
	seeker := experiment.New(cfg, nil, nil).Seeker()
	v, e, err := seeker.Command(pose, cfg.Dt)
	if err != nil {
		return err
	}
	w := kinematics.WheelSpeeds(v, cfg.Geometry)

	fmt.Printf("distance:      %.6f m\nheading error: %.6f rad\n", e.Distance, e.Heading)
	fmt.Printf("arrived:       %t\n", seeker.Arrived())
	fmt.Printf("command:       linear %.6f m/s, angular %.6f rad/s\n", v.Linear, v.Angular)
	fmt.Printf("wheels:        left %.6f rad/s, right %.6f rad/s\n", w.Left, w.Right)
	return nil
}
