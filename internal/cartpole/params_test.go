package cartpole

import (
	"math"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	if !p.UseCorrectModel {
		t.Error("default params should use the corrected model")
	}
	if p.Gravity <= 0 {
		t.Errorf("default gravity should be positive, got %f", p.Gravity)
	}
	if !p.FiniteTrack {
		t.Error("default track should be finite")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default params should validate: %v", err)
	}
}

func TestPresetSwitches(t *testing.T) {
	p := DefaultParams()

	p.SetToClassicModel()
	if p.UseCorrectModel {
		t.Error("classic preset should clear the model flag")
	}
	if p.Gravity >= 0 {
		t.Errorf("classic preset should flip gravity negative, got %f", p.Gravity)
	}

	p.SetToClassicModelWithCorrectGravity()
	if p.UseCorrectModel {
		t.Error("classic-gravity preset should clear the model flag")
	}
	if p.Gravity <= 0 {
		t.Errorf("classic-gravity preset should restore positive gravity, got %f", p.Gravity)
	}

	p.SetToCorrectModel()
	if !p.UseCorrectModel {
		t.Error("correct preset should set the model flag")
	}
	if p.Gravity <= 0 {
		t.Errorf("correct preset should keep gravity positive, got %f", p.Gravity)
	}
}

func TestPresetSwitchDoesNotResetState(t *testing.T) {
	p := DefaultParams()
	s := NewState(1.0, 0.5, 0.1, -0.2)

	p.SetToClassicModel()

	want := NewState(1.0, 0.5, 0.1, -0.2)
	if s != want {
		t.Errorf("preset switch must not touch state: got %+v", s)
	}
}

func TestMaxCartSpeedBound(t *testing.T) {
	p := DefaultParams()

	accel := p.ForceMag / (p.CartMass + p.PoleMass)
	duration := math.Sqrt(2 * 2 * p.HalfTrackLength / accel)
	want := accel * duration

	got := p.MaxCartSpeedBound()
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected bound %f, got %f", want, got)
	}
	if got <= p.MaxCartSpeed {
		t.Errorf("analytic bound %f should exceed the default cap %f", got, p.MaxCartSpeed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero track", func(p *Params) { p.HalfTrackLength = 0 }},
		{"negative track", func(p *Params) { p.HalfTrackLength = -2.4 }},
		{"zero dt", func(p *Params) { p.TimeDelta = 0 }},
		{"negative dt", func(p *Params) { p.TimeDelta = -0.02 }},
		{"zero cart mass", func(p *Params) { p.CartMass = 0 }},
		{"zero pole mass", func(p *Params) { p.PoleMass = 0 }},
		{"zero pole length", func(p *Params) { p.HalfPoleLength = 0 }},
		{"zero angle range", func(p *Params) { p.AngleRange = 0 }},
		{"zero force", func(p *Params) { p.ForceMag = 0 }},
		{"zero gravity", func(p *Params) { p.Gravity = 0 }},
		{"negative cart friction", func(p *Params) { p.CartFriction = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestAttributes(t *testing.T) {
	p := DefaultParams()

	attrs := p.Attributes()
	if len(attrs) != 5 {
		t.Fatalf("corrected model should expose 5 attributes, got %d", len(attrs))
	}
	last := attrs[4]
	if last.Name != AttrNormalSign || !last.Hidden {
		t.Errorf("5th attribute should be the hidden normal sign, got %+v", last)
	}

	p.SetToClassicModel()
	if n := len(p.Attributes()); n != 4 {
		t.Errorf("classic model should expose 4 attributes, got %d", n)
	}

	x, ok := p.Attribute(AttrX)
	if !ok {
		t.Fatal("position attribute missing")
	}
	if x.Lower != -p.HalfTrackLength || x.Upper != p.HalfTrackLength {
		t.Errorf("position limits should match the track, got [%f, %f]", x.Lower, x.Upper)
	}
}
