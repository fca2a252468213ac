package cartpole

import "math"

// Derivs holds the second derivatives a dynamics model produces for one step,
// plus the resolved normal-force sign for the model that tracks it.
type Derivs struct {
	XAcc       float64
	AngleAcc   float64
	NormalSign float64
}

// Model computes the state's second derivatives under a signed force.
type Model interface {
	Derive(s State, force float64) Derivs
}

// signum is the mathematical sign function: zero at zero. The classic model
// uses it for its friction terms, so a stationary cart feels no friction.
func signum(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// binarySign never reports zero; non-negative values resolve to +1. Used for
// the normal-force sign, which must stay in {-1, +1}.
func binarySign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}

// classicModel is the Barto, Sutton, and Anderson formulation: a single
// closed-form evaluation with the (incorrect) velocity-only friction terms.
type classicModel struct {
	p *Params
}

func (m classicModel) Derive(s State, force float64) Derivs {
	p := m.p
	sMass := p.CartMass + p.PoleMass

	sint := math.Sin(s.Angle)
	cost := math.Cos(s.Angle)

	cosFactor := (-force -
		p.PoleMass*p.HalfPoleLength*s.AngleVel*s.AngleVel*sint +
		p.CartFriction*signum(s.XVel)) / sMass
	hingeFriction := p.PoleFriction * s.AngleVel / (p.PoleMass * p.HalfPoleLength)

	num := p.Gravity*sint + cost*cosFactor - hingeFriction
	denom := p.HalfPoleLength * (4.0/3.0 - p.PoleMass*cost*cost/sMass)
	angleAcc := num / denom

	xAcc := (force +
		p.PoleMass*p.HalfPoleLength*(s.AngleVel*s.AngleVel*sint-angleAcc*cost) -
		p.CartFriction*signum(s.XVel)) / sMass

	// The classic model does not track a normal force; the seed sign is
	// passed through untouched.
	return Derivs{XAcc: xAcc, AngleAcc: angleAcc, NormalSign: s.NormalSign}
}
