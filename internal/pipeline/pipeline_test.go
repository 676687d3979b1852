package pipeline_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/diffbot/internal/behavior"
	"github.com/san-kum/diffbot/internal/control"
	"github.com/san-kum/diffbot/internal/drive"
	"github.com/san-kum/diffbot/internal/navigation"
	"github.com/san-kum/diffbot/internal/odometry"
	"github.com/san-kum/diffbot/internal/pipeline"
)

type recorder struct {
	outputs []pipeline.Output
}

func (r *recorder) OnCycle(in pipeline.Input, out pipeline.Output) {
	r.outputs = append(r.outputs, out)
}

type countMetric struct{ n int }

func (c *countMetric) Name() string                                   { return "count" }
func (c *countMetric) Observe(in pipeline.Input, out pipeline.Output) { c.n++ }
func (c *countMetric) Value() float64                                 { return float64(c.n) }
func (c *countMetric) Reset()                                         { c.n = 0 }

var _ = Describe("Pipeline", func() {
	var (
		ctx  context.Context
		geo  drive.Geometry
		est  *odometry.Estimator
		rec  *recorder
		cnt  *countMetric
		pipe *pipeline.Pipeline
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		geo, err = drive.NewGeometry(0.0205, 0.052)
		Expect(err).NotTo(HaveOccurred())
		est, err = odometry.NewEstimator(geo, 1000, drive.Pose{})
		Expect(err).NotTo(HaveOccurred())
		rec = &recorder{}
		cnt = &countMetric{}
	})

	Describe("wall mode", func() {
		BeforeEach(func() {
			var err error
			b := behavior.ConstantSpeed{Speed: 0.1, Kp: 1, Desired: 0.2}
			pipe, err = pipeline.NewWallFollower(est, geo, b, nil)
			Expect(err).NotTo(HaveOccurred())
			pipe.AddObserver(rec)
			pipe.AddMetric(cnt)
		})

		It("converts the behavior command into wheel speeds", func() {
			out, err := pipe.Step(ctx, pipeline.Input{Readings: behavior.Readings{Wall: 0.18}, Dt: 0.032})
			Expect(err).NotTo(HaveOccurred())

			Expect(out.Velocity.Linear).To(Equal(0.1))
			Expect(out.Velocity.Angular).To(BeNumerically("~", -0.02, 1e-12))
			Expect(out.Wheels.Left).To(BeNumerically(">", out.Wheels.Right))
			Expect(pipe.Mode()).To(Equal(pipeline.ModeWall))
			Expect(pipe.Seeker()).To(BeNil())
		})

		It("tracks pose from the encoders", func() {
			_, err := pipe.Step(ctx, pipeline.Input{Encoders: drive.EncoderSample{}, Dt: 0.1})
			Expect(err).NotTo(HaveOccurred())
			out, err := pipe.Step(ctx, pipeline.Input{Encoders: drive.EncoderSample{Left: 1000, Right: 1000}, Dt: 1.0})
			Expect(err).NotTo(HaveOccurred())

			Expect(out.Pose.X).To(BeNumerically("~", 2*math.Pi*0.0205, 1e-12))
			Expect(out.Measured.Left).To(BeNumerically("~", 2*math.Pi, 1e-12))
			Expect(out.Time).To(BeNumerically("~", 1.1, 1e-12))
			Expect(pipe.Cycles()).To(Equal(2))
		})

		It("rejects a bad time step without touching state", func() {
			_, err := pipe.Step(ctx, pipeline.Input{Dt: 0.1})
			Expect(err).NotTo(HaveOccurred())
			_, err = pipe.Step(ctx, pipeline.Input{Encoders: drive.EncoderSample{Left: 50, Right: 80}, Dt: 0.1})
			Expect(err).NotTo(HaveOccurred())
			before := pipe.Pose()

			_, err = pipe.Step(ctx, pipeline.Input{Encoders: drive.EncoderSample{Left: 900, Right: 10}, Dt: -0.1})
			Expect(errors.Is(err, drive.ErrInvalidTimeStep)).To(BeTrue())

			var cycleErr *pipeline.CycleError
			Expect(errors.As(err, &cycleErr)).To(BeTrue())
			Expect(cycleErr.Cycle).To(Equal(2))

			Expect(pipe.Pose()).To(Equal(before))
			Expect(pipe.Cycles()).To(Equal(2))
			Expect(rec.outputs).To(HaveLen(2))
			Expect(pipe.Metrics()).To(HaveKeyWithValue("count", 2.0))
		})

		It("honors cancellation", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := pipe.Step(cctx, pipeline.Input{Dt: 0.1})
			Expect(err).To(MatchError(context.Canceled))
		})

		It("refuses goal changes", func() {
			Expect(pipe.SetGoal(r2.Vec{X: 1})).To(HaveOccurred())
		})
	})

	Describe("goal mode", func() {
		var seeker *navigation.Seeker

		BeforeEach(func() {
			var err error
			seeker = navigation.NewSeeker(r2.Vec{X: 0, Y: 1}, 0.1, 0.01, control.Gains{Kp: 0.5, Ki: 0.1, Kd: 0.01})
			pipe, err = pipeline.NewGoalSeeker(est, geo, seeker, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("turns toward the goal", func() {
			out, err := pipe.Step(ctx, pipeline.Input{Dt: 0.01})
			Expect(err).NotTo(HaveOccurred())

			Expect(out.GoalError.Distance).To(BeNumerically("~", 1, 1e-12))
			Expect(out.GoalError.Heading).To(BeNumerically("~", math.Pi/2, 1e-12))
			Expect(out.Velocity.Angular).To(BeNumerically(">", 0))
			Expect(out.Wheels.Right).To(BeNumerically(">", out.Wheels.Left))
		})

		It("keeps controller memory on a rejected cycle", func() {
			_, err := pipe.Step(ctx, pipeline.Input{Dt: 0.01})
			Expect(err).NotTo(HaveOccurred())
			state := seeker.PID().State()

			_, err = pipe.Step(ctx, pipeline.Input{Dt: 0})
			Expect(err).To(HaveOccurred())
			Expect(seeker.PID().State()).To(Equal(state))
		})

		It("resets the controller on a new goal", func() {
			_, err := pipe.Step(ctx, pipeline.Input{Dt: 0.01})
			Expect(err).NotTo(HaveOccurred())

			Expect(pipe.SetGoal(r2.Vec{X: 2})).To(Succeed())
			Expect(seeker.PID().State()).To(Equal(control.State{}))
		})

		It("stops on arrival", func() {
			Expect(pipe.SetGoal(r2.Vec{X: 0.005})).To(Succeed())
			out, err := pipe.Step(ctx, pipeline.Input{Dt: 0.01})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Arrived).To(BeTrue())
			Expect(out.Wheels).To(Equal(drive.WheelSpeeds{}))
		})
	})

	It("validates construction", func() {
		_, err := pipeline.NewWallFollower(est, drive.Geometry{}, behavior.ConstantSpeed{}, nil)
		Expect(errors.Is(err, drive.ErrInvalidGeometry)).To(BeTrue())

		_, err = pipeline.NewWallFollower(est, geo, nil, nil)
		Expect(err).To(HaveOccurred())

		_, err = pipeline.NewGoalSeeker(nil, geo, navigation.NewSeeker(r2.Vec{}, 0, 0, control.Gains{}), nil)
		Expect(err).To(HaveOccurred())
	})
})
