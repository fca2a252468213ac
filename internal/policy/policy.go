// Package policy provides action-selection strategies for the balancing
// task. All policies implement the sim.Policy interface; stochastic ones
// also implement sim.Seedable.
package policy

import (
	"math/rand"

	"github.com/san-kum/cartpole/internal/cartpole"
)

// ActionNone applies no force. It is not part of the task's action set but
// is useful for watching the uncontrolled dynamics.
var ActionNone = cartpole.Action{Name: "none", Dir: 0}

// None never pushes.
type None struct{}

func NewNone() *None { return &None{} }

func (*None) Act(s cartpole.State, step int) cartpole.Action { return ActionNone }

// Constant always applies the same action.
type Constant struct {
	action cartpole.Action
}

func NewConstant(a cartpole.Action) *Constant {
	return &Constant{action: a}
}

func (c *Constant) Act(s cartpole.State, step int) cartpole.Action { return c.action }

// BangBang pushes against the pole's lean using the switching signal
// angle + Gain*angleVelocity. Positive force reduces the angle in this
// sign convention, so a positive signal means push right.
type BangBang struct {
	Gain float64
}

func NewBangBang(gain float64) *BangBang {
	return &BangBang{Gain: gain}
}

func (b *BangBang) Act(s cartpole.State, step int) cartpole.Action {
	if s.Angle+b.Gain*s.AngleVel >= 0 {
		return cartpole.ActionRight
	}
	return cartpole.ActionLeft
}

// Random picks uniformly between the two pushes.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Act(s cartpole.State, step int) cartpole.Action {
	if r.rng.Intn(2) == 0 {
		return cartpole.ActionLeft
	}
	return cartpole.ActionRight
}

// Seed restarts the policy's random stream.
func (r *Random) Seed(seed int64) {
	r.rng = rand.New(rand.NewSource(seed))
}

// Manual replays a direction set from outside, for interactive driving.
// SetDir and Act may not be called concurrently; the interactive viewer
// serializes them on its event loop.
type Manual struct {
	dir float64
}

func NewManual() *Manual { return &Manual{} }

// SetDir updates the force direction applied on subsequent steps.
func (m *Manual) SetDir(dir float64) { m.dir = dir }

func (m *Manual) Act(s cartpole.State, step int) cartpole.Action {
	switch {
	case m.dir < 0:
		return cartpole.ActionLeft
	case m.dir > 0:
		return cartpole.ActionRight
	}
	return ActionNone
}
