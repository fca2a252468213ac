// Package metrics provides per-episode measurements for the balancing
// task. All types implement the sim.Metric interface.
package metrics

import (
	"math"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/sim"
)

// Survival counts the steps the policy was asked to act.
type Survival struct {
	name  string
	steps int
}

func NewSurvival() *Survival {
	return &Survival{name: "survival"}
}

func (s *Survival) Name() string { return s.name }

func (s *Survival) Observe(x cartpole.State, a cartpole.Action, step int) {
	s.steps++
}

func (s *Survival) Value() float64 { return float64(s.steps) }

func (s *Survival) Reset() { s.steps = 0 }

// ControlEffort averages the absolute force direction over the episode.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{name: "control_effort"}
}

func (c *ControlEffort) Name() string { return c.name }

func (c *ControlEffort) Observe(x cartpole.State, a cartpole.Action, step int) {
	c.sum += math.Abs(a.Dir)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// PeakAngle tracks the largest absolute pole angle seen.
type PeakAngle struct {
	name string
	peak float64
}

func NewPeakAngle() *PeakAngle {
	return &PeakAngle{name: "peak_angle"}
}

func (p *PeakAngle) Name() string { return p.name }

func (p *PeakAngle) Observe(x cartpole.State, a cartpole.Action, step int) {
	p.peak = math.Max(p.peak, math.Abs(x.Angle))
}

func (p *PeakAngle) Value() float64 { return p.peak }

func (p *PeakAngle) Reset() { p.peak = 0 }

// Stability is the fraction of observed steps with the pole inside the
// given absolute angle.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{name: "stability", threshold: threshold}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(x cartpole.State, a cartpole.Action, step int) {
	s.samples++
	if math.Abs(x.Angle) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Defaults is the metric set the CLI attaches to every run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewSurvival(),
		NewControlEffort(),
		NewPeakAngle(),
		NewStability(cartpole.DefaultMaxAbsoluteAngle / 2),
	}
}
