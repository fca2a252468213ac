package cartpole

import (
	"fmt"
	"math"
)

// Attribute names for the named-accessor contract.
const (
	AttrX          = "x"
	AttrXVel       = "xv"
	AttrAngle      = "angle"
	AttrAngleVel   = "anglev"
	AttrNormalSign = "normalSign"
)

// State is the mechanical configuration of the cart and pole. It is a plain
// value owned by the caller between steps.
//
// NormalSign seeds the corrected model's normal-force sign resolution. It is
// a solver hint carried forward between steps, not part of the physical
// configuration; the classic model ignores it. It is always ±1, never 0.
type State struct {
	X          float64
	XVel       float64
	Angle      float64
	AngleVel   float64
	NormalSign float64
}

// NewState returns a state with the given configuration and the normal-force
// sign seeded to +1.
func NewState(x, xVel, angle, angleVel float64) State {
	return State{X: x, XVel: xVel, Angle: angle, AngleVel: angleVel, NormalSign: 1}
}

// InitialState is the default episode start: cart centered and stationary,
// pole perfectly vertical.
func InitialState() State {
	return NewState(0, 0, 0, 0)
}

// Get reads an attribute by name.
func (s State) Get(name string) (float64, error) {
	switch name {
	case AttrX:
		return s.X, nil
	case AttrXVel:
		return s.XVel, nil
	case AttrAngle:
		return s.Angle, nil
	case AttrAngleVel:
		return s.AngleVel, nil
	case AttrNormalSign:
		return s.NormalSign, nil
	}
	return 0, fmt.Errorf("cartpole: unknown attribute %q", name)
}

// Set writes an attribute by name.
func (s *State) Set(name string, v float64) error {
	switch name {
	case AttrX:
		s.X = v
	case AttrXVel:
		s.XVel = v
	case AttrAngle:
		s.Angle = v
	case AttrAngleVel:
		s.AngleVel = v
	case AttrNormalSign:
		s.NormalSign = v
	default:
		return fmt.Errorf("cartpole: unknown attribute %q", name)
	}
	return nil
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range [...]float64{s.X, s.XVel, s.Angle, s.AngleVel} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Vector returns the four physical components in attribute order. The
// normal-force sign is excluded; it is not observable state.
func (s State) Vector() []float64 {
	return []float64{s.X, s.XVel, s.Angle, s.AngleVel}
}
