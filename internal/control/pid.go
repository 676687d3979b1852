package control

import (
	"github.com/pkg/errors"

	"github.com/san-kum/diffbot/internal/drive"
)

type Gains struct {
	Kp float64 `json:"kp" yaml:"kp" toml:"kp"`
	Ki float64 `json:"ki" yaml:"ki" toml:"ki"`
	Kd float64 `json:"kd" yaml:"kd" toml:"kd"`
}

// State is the memory of one controller instance. Integral already
// includes the Ki factor.
type State struct {
	PreviousError float64 `json:"previous_error"`
	Integral      float64 `json:"integral"`
}

type Output struct {
	Value float64
	State State
}

// Step evaluates one PID update. s is not modified; the successor state is
// returned in Output. The integral is not clamped.
func Step(err, dt float64, g Gains, s State) (Output, error) {
	if e := drive.CheckTimeStep(dt); e != nil {
		return Output{State: s}, e
	}

	p := g.Kp * err
	i := s.Integral + g.Ki*err*dt
	d := g.Kd * (err - s.PreviousError) / dt

	return Output{
		Value: p + i + d,
		State: State{PreviousError: err, Integral: i},
	}, nil
}

// Reset returns the zero state for a fresh error signal.
func Reset(g Gains) State {
	return State{}
}

type PID struct {
	Gains Gains
	state State
}

func NewPID(g Gains) *PID {
	return &PID{Gains: g}
}

// Next applies Step to the owned state. The state only advances on success.
func (p *PID) Next(err, dt float64) (float64, error) {
	out, e := Step(err, dt, p.Gains, p.state)
	if e != nil {
		return 0, e
	}
	p.state = out.State
	return out.Value, nil
}

// Reset clears integral and derivative memory.
func (p *PID) Reset() {
	p.state = Reset(p.Gains)
}

// ResetTo clears the integral and seeds the previous error with err, so the
// first derivative after a reset is zero instead of a spike.
func (p *PID) ResetTo(err float64) {
	p.state = State{PreviousError: err}
}

func (p *PID) State() State { return p.state }

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp": p.Gains.Kp,
		"Ki": p.Gains.Ki,
		"Kd": p.Gains.Kd,
	}
}

// SetParam adjusts a PID gain
func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		p.Gains.Kp = value
	case "Ki":
		p.Gains.Ki = value
	case "Kd":
		p.Gains.Kd = value
	default:
		return errors.Errorf("unknown pid parameter: %s", name)
	}
	return nil
}
