package cartpole

import "math"

// DefaultMaxAbsoluteAngle is the pole angle that fails the task: 12 degrees,
// about 0.2094 radians.
var DefaultMaxAbsoluteAngle = 12.0 * (math.Pi / 180.0)

// FailPenalty is the reward for entering a failure state.
const FailPenalty = -1.0

// TerminalFn decides task failure: the cart at or beyond either track end,
// or the pole at or beyond the maximum absolute angle. The track bounds are
// read from the position attribute's configured range. It holds no state and
// may be called on any state, including ones never produced by the stepper.
type TerminalFn struct {
	maxAbsAngle float64
	xLower      float64
	xUpper      float64
}

// NewTerminalFn builds a terminal function for p with the default 12 degree
// angle threshold.
func NewTerminalFn(p Params) *TerminalFn {
	return NewTerminalFnWithAngle(p, DefaultMaxAbsoluteAngle)
}

// NewTerminalFnWithAngle builds a terminal function with an explicit maximum
// absolute pole angle in radians.
func NewTerminalFnWithAngle(p Params, maxAbsoluteAngle float64) *TerminalFn {
	att, _ := p.Attribute(AttrX)
	return &TerminalFn{
		maxAbsAngle: maxAbsoluteAngle,
		xLower:      att.Lower,
		xUpper:      att.Upper,
	}
}

// IsTerminal reports whether s is a failure state.
func (tf *TerminalFn) IsTerminal(s State) bool {
	if s.X <= tf.xLower || s.X >= tf.xUpper {
		return true
	}
	return math.Abs(s.Angle) >= tf.maxAbsAngle
}

// RewardFn returns FailPenalty on exactly the terminal function's failure
// conditions, evaluated on the successor state, and 0 otherwise. Delegating
// to the same predicate keeps the two classifiers consistent by
// construction.
type RewardFn struct {
	term *TerminalFn
}

// NewRewardFn builds a reward function for p with the default angle
// threshold.
func NewRewardFn(p Params) *RewardFn {
	return &RewardFn{term: NewTerminalFn(p)}
}

// NewRewardFnWithAngle builds a reward function with an explicit maximum
// absolute pole angle in radians.
func NewRewardFnWithAngle(p Params, maxAbsoluteAngle float64) *RewardFn {
	return &RewardFn{term: NewTerminalFnWithAngle(p, maxAbsoluteAngle)}
}

// Reward scores the transition (s, a, next). The predecessor state and
// action are accepted for signature symmetry with generic reward functions
// but do not affect the result.
func (rf *RewardFn) Reward(s State, a Action, next State) float64 {
	if rf.term.IsTerminal(next) {
		return FailPenalty
	}
	return 0
}
