package policy

import (
	"testing"

	"github.com/san-kum/cartpole/internal/cartpole"
)

func TestBangBangPushesAgainstLean(t *testing.T) {
	b := NewBangBang(0.5)

	tests := []struct {
		name string
		s    cartpole.State
		want string
	}{
		{"leaning right", cartpole.NewState(0, 0, 0.1, 0), cartpole.ActionNameRight},
		{"leaning left", cartpole.NewState(0, 0, -0.1, 0), cartpole.ActionNameLeft},
		{"upright falling left", cartpole.NewState(0, 0, 0, -1), cartpole.ActionNameLeft},
		{"velocity overrides small angle", cartpole.NewState(0, 0, 0.1, -1), cartpole.ActionNameLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Act(tt.s, 0); got.Name != tt.want {
				t.Errorf("Act(%+v) = %s, want %s", tt.s, got.Name, tt.want)
			}
		})
	}
}

func TestRandomIsSeedReproducible(t *testing.T) {
	a := NewRandom(7)
	b := NewRandom(7)
	s := cartpole.InitialState()

	for i := 0; i < 100; i++ {
		if a.Act(s, i) != b.Act(s, i) {
			t.Fatalf("same seed diverged at step %d", i)
		}
	}

	a.Seed(7)
	c := NewRandom(7)
	for i := 0; i < 20; i++ {
		if a.Act(s, i) != c.Act(s, i) {
			t.Fatal("Seed should restart the stream")
		}
	}
}

func TestManualFollowsDir(t *testing.T) {
	m := NewManual()
	s := cartpole.InitialState()

	if got := m.Act(s, 0); got != ActionNone {
		t.Errorf("fresh manual policy should idle, got %v", got)
	}

	m.SetDir(1)
	if got := m.Act(s, 0); got != cartpole.ActionRight {
		t.Errorf("dir 1 should push right, got %v", got)
	}

	m.SetDir(-2)
	if got := m.Act(s, 0); got != cartpole.ActionLeft {
		t.Errorf("negative dir should push left, got %v", got)
	}
}

func TestFromName(t *testing.T) {
	for _, name := range Names() {
		if _, err := FromName(name, nil); err != nil {
			t.Errorf("FromName(%q): %v", name, err)
		}
	}

	if _, err := FromName("pid", nil); err == nil {
		t.Error("unknown policy should fail")
	}

	p, err := FromName("bangbang", map[string]float64{"gain": 2.0})
	if err != nil {
		t.Fatalf("FromName: %v", err)
	}
	b, ok := p.(*BangBang)
	if !ok {
		t.Fatalf("expected *BangBang, got %T", p)
	}
	if b.Gain != 2.0 {
		t.Errorf("gain not applied: %v", b.Gain)
	}
}
