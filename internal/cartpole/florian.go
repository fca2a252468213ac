package cartpole

import "math"

// florianModel is the corrected formulation. Coulomb friction between cart
// and ground depends on the sign of the normal contact force, and the normal
// force depends on the angular acceleration being computed. The circularity
// is broken with a trial sign carried in the state: evaluate with the trial,
// compute the implied normal force, and re-evaluate at most once if the sign
// disagrees. The second result is accepted even if still inconsistent.
type florianModel struct {
	p *Params
}

func (m florianModel) Derive(s State, force float64) Derivs {
	angleAcc := m.angleAccel(s, s.NormalSign, force)
	n := m.normalForce(s, angleAcc)
	sign := binarySign(n)
	if sign != s.NormalSign {
		angleAcc = m.angleAccel(s, sign, force)
	}
	xAcc := m.linearAccel(s, n, force, angleAcc)
	return Derivs{XAcc: xAcc, AngleAcc: angleAcc, NormalSign: sign}
}

// angleAccel computes the angular acceleration assuming the given
// normal-force sign.
func (m florianModel) angleAccel(s State, nsign, force float64) float64 {
	p := m.p
	sMass := p.CartMass + p.PoleMass

	sint := math.Sin(s.Angle)
	cost := math.Cos(s.Angle)
	frictionDir := signum(nsign * s.XVel)

	cosFactor := (-force -
		p.PoleMass*p.HalfPoleLength*s.AngleVel*s.AngleVel*
			(sint+p.CartFriction*frictionDir*cost)) / sMass
	groundFriction := p.CartFriction * p.Gravity * frictionDir

	num := p.Gravity*sint + cost*cosFactor + groundFriction
	denom := p.HalfPoleLength * (4.0/3.0 -
		(p.PoleMass*cost/sMass)*(cost-p.CartMass*frictionDir))
	return num / denom
}

// normalForce is the contact force the pole assembly exerts on the ground
// through the cart; negative when the swinging pole lifts the cart.
func (m florianModel) normalForce(s State, angleAcc float64) float64 {
	p := m.p
	return (p.CartMass+p.PoleMass)*p.Gravity -
		p.PoleMass*p.HalfPoleLength*
			(angleAcc*math.Sin(s.Angle)+s.AngleVel*s.AngleVel*math.Cos(s.Angle))
}

func (m florianModel) linearAccel(s State, n, force, angleAcc float64) float64 {
	p := m.p
	sMass := p.CartMass + p.PoleMass

	sint := math.Sin(s.Angle)
	cost := math.Cos(s.Angle)

	return (force +
		p.PoleMass*p.HalfPoleLength*(s.AngleVel*s.AngleVel*sint-angleAcc*cost) -
		p.CartFriction*n*signum(n*s.XVel)) / sMass
}
