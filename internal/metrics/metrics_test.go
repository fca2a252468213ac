package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/cartpole/internal/cartpole"
)

func TestSurvival(t *testing.T) {
	m := NewSurvival()

	s := cartpole.InitialState()
	for i := 0; i < 37; i++ {
		m.Observe(s, cartpole.ActionRight, i)
	}
	if m.Value() != 37 {
		t.Errorf("expected 37 steps, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	s := cartpole.InitialState()
	m.Observe(s, cartpole.ActionRight, 0)
	m.Observe(s, cartpole.ActionLeft, 1)
	m.Observe(s, cartpole.Action{Name: "none", Dir: 0}, 2)

	want := 2.0 / 3.0
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected mean effort %v, got %v", want, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestPeakAngle(t *testing.T) {
	m := NewPeakAngle()

	for _, angle := range []float64{0.05, -0.2, 0.1} {
		m.Observe(cartpole.NewState(0, 0, angle, 0), cartpole.ActionRight, 0)
	}
	if m.Value() != 0.2 {
		t.Errorf("expected peak 0.2, got %v", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(0.1)

	if m.Value() != 1.0 {
		t.Error("no samples should read as fully stable")
	}

	angles := []float64{0.0, 0.05, 0.15, -0.2}
	for i, a := range angles {
		m.Observe(cartpole.NewState(0, 0, a, 0), cartpole.ActionRight, i)
	}
	if m.Value() != 0.5 {
		t.Errorf("expected stability 0.5, got %v", m.Value())
	}
}

func TestDefaults(t *testing.T) {
	ms := Defaults()
	if len(ms) == 0 {
		t.Fatal("expected a non-empty default metric set")
	}

	seen := make(map[string]bool)
	for _, m := range ms {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %q", m.Name())
		}
		seen[m.Name()] = true
	}
}
