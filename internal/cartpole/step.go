package cartpole

import "math"

// Model returns the dynamics strategy selected by UseCorrectModel.
func (p *Params) Model() Model {
	if p.UseCorrectModel {
		return florianModel{p: p}
	}
	return classicModel{p: p}
}

// Step advances s in place by one TimeDelta of forward Euler integration
// under the given force direction, then enforces the physical bounds.
//
// dir is normally -1, 0, or +1 and is multiplied by ForceMag; other values
// are accepted and simply scale the force. Step never fails: every input
// produces a clamped, finite successor. Hitting a track end or the angle
// limit is an inelastic collision that zeroes the corresponding velocity.
// On an infinite track the position component never advances.
func Step(p *Params, s *State, dir float64) {
	force := dir * p.ForceMag
	d := p.Model().Derive(*s, force)

	x := s.X + p.TimeDelta*s.XVel
	xv := s.XVel + p.TimeDelta*d.XAcc
	a := s.Angle + p.TimeDelta*s.AngleVel
	av := s.AngleVel + p.TimeDelta*d.AngleAcc

	if math.Abs(x) > p.HalfTrackLength {
		x = signum(x) * p.HalfTrackLength
		xv = 0
	}
	if math.Abs(xv) > p.MaxCartSpeed {
		xv = signum(xv) * p.MaxCartSpeed
	}
	if math.Abs(a) > p.AngleRange {
		a = signum(a) * p.AngleRange
		av = 0
	}
	if math.Abs(av) > p.MaxAngleSpeed {
		av = signum(av) * p.MaxAngleSpeed
	}

	if p.FiniteTrack {
		s.X = x
	}
	s.XVel = xv
	s.Angle = a
	s.AngleVel = av
	if p.UseCorrectModel {
		s.NormalSign = d.NormalSign
	}
}
