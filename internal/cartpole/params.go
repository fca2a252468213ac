package cartpole

import (
	"fmt"
	"math"
)

// Defaults match the original Barto, Sutton, and Anderson task. MaxCartSpeed
// is an upper bound on the speed reachable by pushing the cart from one end
// of the track to the other; MaxAngleSpeed corresponds to 12 degrees per
// 0.02s time step.
const (
	DefaultHalfTrackLength = 2.4
	DefaultGravity         = 9.8
	DefaultCartMass        = 1.0
	DefaultPoleMass        = 0.1
	DefaultHalfPoleLength  = 0.5
	DefaultCartFriction    = 0.0005
	DefaultPoleFriction    = 0.000002
	DefaultForceMag        = 10.0
	DefaultTimeDelta       = 0.02
	DefaultMaxCartSpeed    = 6.81
	DefaultMaxAngleSpeed   = 10.47
)

// Params holds the simulation parameters for one cart-pole instance. They
// are fixed for the lifetime of an episode; the preset switches may be used
// to reconfigure between episodes.
type Params struct {
	// HalfTrackLength is half the size of the track the cart moves on.
	HalfTrackLength float64
	// AngleRange is the maximum radius the pole can fall. Physics get
	// non-realistic at pi/2; tasks should terminate well before then.
	AngleRange float64
	// Gravity is positive for the correct mechanics. A negative value
	// reproduces the historical incorrect-gravity variant.
	Gravity        float64
	CartMass       float64
	PoleMass       float64
	HalfPoleLength float64
	// CartFriction is the friction coefficient between cart and ground,
	// PoleFriction between pole and hinge.
	CartFriction float64
	PoleFriction float64
	// ForceMag is the force magnitude applied in either direction.
	ForceMag  float64
	TimeDelta float64
	// MaxCartSpeed and MaxAngleSpeed cap the velocity components.
	MaxCartSpeed  float64
	MaxAngleSpeed float64
	// FiniteTrack selects whether the track has ends. On an infinite track
	// the cart position never changes.
	FiniteTrack bool
	// UseCorrectModel selects the corrected (Florian) mechanics over the
	// classic formulation.
	UseCorrectModel bool
}

// DefaultParams returns the corrected model with the original task defaults.
func DefaultParams() Params {
	return Params{
		HalfTrackLength: DefaultHalfTrackLength,
		AngleRange:      math.Pi / 2,
		Gravity:         DefaultGravity,
		CartMass:        DefaultCartMass,
		PoleMass:        DefaultPoleMass,
		HalfPoleLength:  DefaultHalfPoleLength,
		CartFriction:    DefaultCartFriction,
		PoleFriction:    DefaultPoleFriction,
		ForceMag:        DefaultForceMag,
		TimeDelta:       DefaultTimeDelta,
		MaxCartSpeed:    DefaultMaxCartSpeed,
		MaxAngleSpeed:   DefaultMaxAngleSpeed,
		FiniteTrack:     true,
		UseCorrectModel: true,
	}
}

// SetToCorrectModel selects the corrected mechanics with positive gravity.
func (p *Params) SetToCorrectModel() {
	p.Gravity = math.Abs(p.Gravity)
	p.UseCorrectModel = true
}

// SetToClassicModelWithCorrectGravity selects the classic mechanics, which
// have incorrect friction forces, but with gravity pointing the right way.
func (p *Params) SetToClassicModelWithCorrectGravity() {
	p.Gravity = math.Abs(p.Gravity)
	p.UseCorrectModel = false
}

// SetToClassicModel selects the classic mechanics with gravity in the wrong
// direction, fully reproducing the historical formulation. The pole will
// "bounce" once it reaches about 90 degrees under this variant.
func (p *Params) SetToClassicModel() {
	p.Gravity = -math.Abs(p.Gravity)
	p.UseCorrectModel = false
}

// MaxCartSpeedBound returns an analytic upper bound on the cart speed
// reachable by pushing from one side of the track to the other under
// simplified mechanics (constant acceleration F/(mc+mp)). Useful for
// calibrating MaxCartSpeed; it does not modify the parameters.
func (p Params) MaxCartSpeedBound() float64 {
	accel := p.ForceMag / (p.CartMass + p.PoleMass)
	t := math.Sqrt(2 * (2 * p.HalfTrackLength) / accel)
	return accel * t
}

// Validate reports misconfiguration. The dynamics themselves never fail; a
// bad parameter set is a construction-time contract violation and must be
// rejected here rather than surface mid-simulation.
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"halfTrackLength", p.HalfTrackLength},
		{"angleRange", p.AngleRange},
		{"cartMass", p.CartMass},
		{"poleMass", p.PoleMass},
		{"halfPoleLength", p.HalfPoleLength},
		{"forceMag", p.ForceMag},
		{"timeDelta", p.TimeDelta},
		{"maxCartSpeed", p.MaxCartSpeed},
		{"maxAngleSpeed", p.MaxAngleSpeed},
	}
	for _, c := range checks {
		if c.v <= 0 {
			return fmt.Errorf("cartpole: %s must be positive, got %f", c.name, c.v)
		}
	}
	if p.CartFriction < 0 || p.PoleFriction < 0 {
		return fmt.Errorf("cartpole: friction coefficients must be non-negative")
	}
	if p.Gravity == 0 {
		return fmt.Errorf("cartpole: gravity must be non-zero")
	}
	return nil
}

// Attribute describes one state variable and its physical range.
type Attribute struct {
	Name   string
	Lower  float64
	Upper  float64
	Hidden bool
}

// Attributes returns the state variables with their configured limits. The
// normal-force sign is included, as a hidden attribute, only when the
// corrected model is in use.
func (p Params) Attributes() []Attribute {
	attrs := []Attribute{
		{Name: AttrX, Lower: -p.HalfTrackLength, Upper: p.HalfTrackLength},
		{Name: AttrXVel, Lower: -p.MaxCartSpeed, Upper: p.MaxCartSpeed},
		{Name: AttrAngle, Lower: -p.AngleRange, Upper: p.AngleRange},
		{Name: AttrAngleVel, Lower: -p.MaxAngleSpeed, Upper: p.MaxAngleSpeed},
	}
	if p.UseCorrectModel {
		attrs = append(attrs, Attribute{Name: AttrNormalSign, Lower: -1, Upper: 1, Hidden: true})
	}
	return attrs
}

// Attribute looks up a single attribute by name.
func (p Params) Attribute(name string) (Attribute, bool) {
	for _, a := range p.Attributes() {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}
