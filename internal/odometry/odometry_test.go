package odometry

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/san-kum/diffbot/internal/drive"
)

func TestWheelSpeedsFromEncoders(t *testing.T) {
	prev := drive.EncoderSample{Left: 100, Right: 200}
	cur := drive.EncoderSample{Left: 100 + 500, Right: 200 - 250}

	w, err := WheelSpeedsFromEncoders(cur, prev, 1000, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// half a revolution in 0.5s is 2π rad/s
	if math.Abs(w.Left-2*math.Pi) > 1e-12 {
		t.Errorf("left = %v, want %v", w.Left, 2*math.Pi)
	}
	if math.Abs(w.Right+math.Pi) > 1e-12 {
		t.Errorf("right = %v, want %v", w.Right, -math.Pi)
	}
}

func TestWheelSpeedsFromEncoders_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ppr  int
		dt   float64
	}{
		{"zero dt", 1000, 0},
		{"negative dt", 1000, -0.1},
		{"zero ppr", 0, 0.1},
		{"negative ppr", -10, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WheelSpeedsFromEncoders(drive.EncoderSample{}, drive.EncoderSample{}, tt.ppr, tt.dt)
			if !errors.Is(err, drive.ErrInvalidTimeStep) {
				t.Errorf("expected ErrInvalidTimeStep, got %v", err)
			}
		})
	}
}

func TestIntegratePose_HeadingAhead(t *testing.T) {
	prior := drive.Pose{}
	v := drive.Velocity{Linear: 1.0, Angular: math.Pi / 2}

	got, err := IntegratePose(prior, v, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// translation uses the post-update heading (π/2), so x stays put
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1.0) > 1e-12 {
		t.Errorf("pose = %v, want (0, 1)", got)
	}
	if math.Abs(got.Heading-math.Pi/2) > 1e-12 {
		t.Errorf("heading = %v, want π/2", got.Heading)
	}
}

func TestIntegratePose_WrapsAcrossPi(t *testing.T) {
	prior := drive.Pose{Heading: math.Pi - 0.01}

	got, err := IntegratePose(prior, drive.Velocity{Angular: 10}, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := -math.Pi + 0.99
	if math.Abs(got.Heading-want) > 1e-12 {
		t.Errorf("heading = %v, want %v", got.Heading, want)
	}
	if got.Heading <= -math.Pi || got.Heading > math.Pi {
		t.Errorf("heading %v outside (-π, π]", got.Heading)
	}
}

func TestIntegratePose_HeadingStaysInRange(t *testing.T) {
	pose := drive.Pose{}
	v := drive.Velocity{Linear: 0.2, Angular: -3.0}

	for i := 0; i < 10000; i++ {
		var err error
		pose, err = IntegratePose(pose, v, 0.05)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if pose.Heading <= -math.Pi || pose.Heading > math.Pi {
			t.Fatalf("step %d: heading %v outside (-π, π]", i, pose.Heading)
		}
	}
}

func TestIntegratePose_InvalidTimeStep(t *testing.T) {
	prior := drive.Pose{X: 1, Y: 2, Heading: 0.3}

	got, err := IntegratePose(prior, drive.Velocity{Linear: 1, Angular: 1}, 0)
	if !errors.Is(err, drive.ErrInvalidTimeStep) {
		t.Fatalf("expected ErrInvalidTimeStep, got %v", err)
	}
	if got != prior {
		t.Errorf("pose changed on error: %v", got)
	}
}
