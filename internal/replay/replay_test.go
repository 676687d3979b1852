package replay_test

import (
	"context"
	"io"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/diffbot/internal/behavior"
	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/odometry"
	"github.com/san-kum/diffbot/internal/pipeline"
	"github.com/san-kum/diffbot/internal/replay"
)

var epuck = drive.Geometry{WheelRadius: 0.0205, WheelBase: 0.052}

func obstacleAware() behavior.Behavior {
	return behavior.ObstacleAware{MaxSpeed: 0.1, Kp: 1, Desired: 0.2, MinObstacle: 0.05, MaxRange: 1}
}

func newPipeline(b behavior.Behavior) *pipeline.Pipeline {
	est, err := odometry.NewEstimator(epuck, 1000, drive.Pose{})
	Expect(err).NotTo(HaveOccurred())
	p, err := pipeline.NewWallFollower(est, epuck, b, nil)
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Recording", func() {
	It("loads a YAML recording", func() {
		rec, err := replay.Load(filepath.Join("testdata", "corridor.yaml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.Name).To(Equal("corridor"))
		Expect(rec.Cycles).To(HaveLen(10))
		Expect(rec.Cycles[1]).To(Equal(replay.Cycle{
			Dt: 0.032, Left: 24, Right: 26, Wall: 0.29, Front: 1.0, WallFront: 0.29, WallRear: 0.29,
		}))
		Expect(rec.Duration()).To(BeNumerically("~", 9*0.032, 1e-12))
	})

	It("rejects missing and empty recordings", func() {
		dir := GinkgoT().TempDir()
		_, err := replay.Load(filepath.Join(dir, "missing.yaml"))
		Expect(err).To(HaveOccurred())

		empty := filepath.Join(dir, "empty.yaml")
		Expect(replay.Save(empty, &replay.Recording{Name: "empty"})).To(Succeed())
		_, err = replay.Load(empty)
		Expect(err).To(MatchError(ContainSubstring("no cycles")))
	})

	It("converts cycles to pipeline inputs and back", func() {
		c := replay.Cycle{Dt: 0.01, Left: 3, Right: -4, Wall: 0.1, Front: 0.2, WallFront: 0.3, WallRear: 0.4}
		in := c.Input()
		Expect(in.Encoders).To(Equal(drive.EncoderSample{Left: 3, Right: -4}))
		Expect(in.Readings.WallRear).To(Equal(0.4))
		Expect(replay.CycleFromInput(in)).To(Equal(c))
	})
})

var _ = Describe("Run", func() {
	var (
		ctx context.Context
		rec *replay.Recording
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		rec, err = replay.Load(filepath.Join("testdata", "corridor.yaml"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("skips cycles with a bad time step", func() {
		result, err := replay.Run(ctx, newPipeline(obstacleAware()), rec, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Skipped).To(Equal([]int{3}))
		Expect(result.Outputs).To(HaveLen(9))
	})

	It("ends where a replay without the bad cycle ends", func() {
		clean := &replay.Recording{}
		for i, c := range rec.Cycles {
			if i != 3 {
				clean.Cycles = append(clean.Cycles, c)
			}
		}

		a, err := replay.Run(ctx, newPipeline(obstacleAware()), rec, nil)
		Expect(err).NotTo(HaveOccurred())
		b, err := replay.Run(ctx, newPipeline(obstacleAware()), clean, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Outputs[len(a.Outputs)-1].Pose).To(Equal(b.Outputs[len(b.Outputs)-1].Pose))
	})

	It("stops at the obstacle", func() {
		result, err := replay.Run(ctx, newPipeline(obstacleAware()), rec, nil)
		Expect(err).NotTo(HaveOccurred())
		last := result.Outputs[len(result.Outputs)-1]
		Expect(last.Velocity.Linear).To(BeZero())
	})

	It("returns a partial result when cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		result, err := replay.Run(cctx, newPipeline(obstacleAware()), rec, nil)
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Outputs).To(BeEmpty())
	})

	It("reports io.EOF from an exhausted player", func() {
		pl := replay.NewPlayer(newPipeline(obstacleAware()), rec, nil)
		for i := 0; i < 9; i++ {
			_, err := pl.Next(ctx)
			Expect(err).NotTo(HaveOccurred())
		}
		_, err := pl.Next(ctx)
		Expect(err).To(MatchError(io.EOF))
		Expect(pl.Position()).To(Equal(pl.Len()))
	})
})

var _ = Describe("Recorder", func() {
	It("captures inputs that replay to the same outputs", func() {
		ctx := context.Background()
		b := behavior.ParallelCorrecting{
			MaxSpeed: 0.1, Kp: 2, Kp2: 10, Desired: 0.2, MinObstacle: 0.05, MaxRange: 1,
		}

		live := newPipeline(b)
		recorder := replay.NewRecorder("live", "epuck")
		live.AddObserver(recorder)

		var want []pipeline.Output
		for i := 0; i < 20; i++ {
			in := pipeline.Input{
				Encoders: drive.EncoderSample{Left: int64(25 * i), Right: int64(26 * i)},
				Readings: behavior.Readings{
					Wall: 0.3 - 0.002*float64(i), Front: 1,
					WallFront: 0.3 - 0.002*float64(i), WallRear: 0.3 - 0.001*float64(i),
				},
				Dt: 0.032,
			}
			out, err := live.Step(ctx, in)
			Expect(err).NotTo(HaveOccurred())
			want = append(want, out)
		}

		path := filepath.Join(GinkgoT().TempDir(), "live.yaml")
		Expect(replay.Save(path, recorder.Recording())).To(Succeed())
		rec, err := replay.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.Robot).To(Equal("epuck"))
		Expect(rec.Cycles).To(HaveLen(20))

		replayed, err := replay.Run(ctx, newPipeline(b), rec, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(replayed.Outputs).To(Equal(want))
	})
})

var _ = Describe("Comparison", func() {
	It("replays every member over the same recording", func() {
		rec, err := replay.Load(filepath.Join("testdata", "corridor.yaml"))
		Expect(err).NotTo(HaveOccurred())

		cmp := replay.NewComparison(nil)
		for _, b := range []behavior.Behavior{
			behavior.ConstantSpeed{Speed: 0.1, Kp: 1, Desired: 0.2},
			obstacleAware(),
			behavior.ParallelCorrecting{MaxSpeed: 0.1, Kp: 1, Kp2: 1, Desired: 0.2, MinObstacle: 0.05, MaxRange: 1},
		} {
			b := b
			cmp.Add(b.Name(), func() (*pipeline.Pipeline, error) {
				est, err := odometry.NewEstimator(epuck, 1000, drive.Pose{})
				if err != nil {
					return nil, err
				}
				return pipeline.NewWallFollower(est, epuck, b, nil)
			})
		}

		results, err := cmp.Run(context.Background(), rec)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmp.Names()).To(Equal([]string{"constant", "obstacle", "parallel"}))
		Expect(results).To(HaveLen(3))
		for _, r := range results {
			Expect(r.Outputs).To(HaveLen(9))
			Expect(r.Skipped).To(Equal([]int{3}))
		}
		Expect(results["constant"].Outputs[8].Velocity.Linear).To(Equal(0.1))
		Expect(results["obstacle"].Outputs[8].Velocity.Linear).To(BeZero())
	})

	It("reports members that fail to build", func() {
		rec, err := replay.Load(filepath.Join("testdata", "corridor.yaml"))
		Expect(err).NotTo(HaveOccurred())

		cmp := replay.NewComparison(nil)
		cmp.Add("broken", func() (*pipeline.Pipeline, error) {
			return nil, drive.ErrInvalidGeometry
		})

		results, err := cmp.Run(context.Background(), rec)
		Expect(err).To(MatchError(drive.ErrInvalidGeometry))
		Expect(results).To(BeEmpty())
	})
})
