package telemetry

import (
	"github.com/san-kum/diffbot/internal/drive"
)

const (
	TopicWheels = "wheels"
	TopicPose   = "pose"
)

// WheelCommand is the payload published on <prefix>/wheels.
type WheelCommand struct {
	Cycle   int     `json:"cycle"`
	Time    float64 `json:"time"`
	Left    float64 `json:"left"`
	Right   float64 `json:"right"`
	Linear  float64 `json:"linear"`
	Angular float64 `json:"angular"`
}

// PoseReport is the payload published on <prefix>/pose.
type PoseReport struct {
	Cycle   int        `json:"cycle"`
	Time    float64    `json:"time"`
	Pose    drive.Pose `json:"pose"`
	Arrived bool       `json:"arrived,omitempty"`
}

func Topic(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
