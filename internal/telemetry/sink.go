package telemetry

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/san-kum/diffbot/internal/pipeline"
)

// Sink is a pipeline observer that publishes each cycle. Publish failures
// are logged and counted, never returned to the pipeline.
type Sink struct {
	pub    Publisher
	prefix string
	logger *zap.Logger
	failed int
}

func NewSink(pub Publisher, prefix string, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{pub: pub, prefix: prefix, logger: logger}
}

func (s *Sink) OnCycle(in pipeline.Input, out pipeline.Output) {
	s.send(TopicWheels, WheelCommand{
		Cycle:   out.Cycle,
		Time:    out.Time,
		Left:    out.Wheels.Left,
		Right:   out.Wheels.Right,
		Linear:  out.Velocity.Linear,
		Angular: out.Velocity.Angular,
	})
	s.send(TopicPose, PoseReport{
		Cycle:   out.Cycle,
		Time:    out.Time,
		Pose:    out.Pose,
		Arrived: out.Arrived,
	})
}

// Failures is the number of messages that could not be published.
func (s *Sink) Failures() int { return s.failed }

func (s *Sink) send(name string, msg any) {
	topic := Topic(s.prefix, name)
	payload, err := json.Marshal(msg)
	if err == nil {
		err = s.pub.Publish(topic, payload)
	}
	if err != nil {
		s.failed++
		s.logger.Warn("telemetry publish failed", zap.String("topic", topic), zap.Error(err))
	}
}
