package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/sim"
)

type constantPush struct{ a cartpole.Action }

func (p constantPush) Act(s cartpole.State, step int) cartpole.Action { return p.a }

type idlePolicy struct{}

func (idlePolicy) Act(s cartpole.State, step int) cartpole.Action {
	return cartpole.Action{Name: "none", Dir: 0}
}

var _ = Describe("Runner", func() {
	newRunner := func(p cartpole.Params, policy sim.Policy) *sim.Runner {
		d, err := cartpole.New(p)
		Expect(err).NotTo(HaveOccurred())
		return sim.New(d, policy)
	}

	Describe("an unperturbed upright start", func() {
		It("balances forever under every parameter preset", func() {
			presets := map[string]func(*cartpole.Params){
				"corrected":       (*cartpole.Params).SetToCorrectModel,
				"classic gravity": (*cartpole.Params).SetToClassicModelWithCorrectGravity,
				"classic":         (*cartpole.Params).SetToClassicModel,
			}

			for name, apply := range presets {
				p := cartpole.DefaultParams()
				apply(&p)

				r := newRunner(p, idlePolicy{})
				result, err := r.Run(context.Background(), cartpole.InitialState(),
					sim.Config{MaxSteps: 200})
				Expect(err).NotTo(HaveOccurred(), name)
				Expect(result.Terminated).To(BeFalse(), name)
				Expect(result.Steps).To(Equal(200), name)

				final := result.States[len(result.States)-1]
				Expect(final.Vector()).To(Equal([]float64{0, 0, 0, 0}), name)
			}
		})
	})

	Describe("a constant push", func() {
		It("drops the pole on the side opposite the push", func() {
			r := newRunner(cartpole.DefaultParams(), constantPush{cartpole.ActionRight})
			result, err := r.Run(context.Background(), cartpole.InitialState(),
				sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Terminated).To(BeTrue())
			final := result.States[len(result.States)-1]
			Expect(final.Angle).To(BeNumerically("<=", -cartpole.DefaultMaxAbsoluteAngle))
		})

		It("mirrors exactly when pushed the other way", func() {
			// The classic formulation is exactly odd under state negation.
			// The corrected one is not: its normal-force sign enters the
			// angular denominator asymmetrically once the cart is moving.
			p := cartpole.DefaultParams()
			p.SetToClassicModelWithCorrectGravity()

			right := newRunner(p, constantPush{cartpole.ActionRight})
			left := newRunner(p, constantPush{cartpole.ActionLeft})

			rRes, err := right.Run(context.Background(), cartpole.InitialState(),
				sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			lRes, err := left.Run(context.Background(), cartpole.InitialState(),
				sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			Expect(lRes.Steps).To(Equal(rRes.Steps))
			for i := range rRes.States {
				Expect(lRes.States[i].X).To(Equal(-rRes.States[i].X))
				Expect(lRes.States[i].Angle).To(Equal(-rRes.States[i].Angle))
			}
		})
	})

	Describe("the classic model with negated gravity", func() {
		It("drives a nearly fallen pole back upward", func() {
			p := cartpole.DefaultParams()
			p.SetToClassicModel()

			start := cartpole.NewState(0, 0, p.AngleRange-0.05, 0.1)
			r := newRunner(p, idlePolicy{})
			result, err := r.Run(context.Background(), start,
				sim.Config{MaxSteps: 100, MaxAbsoluteAngle: p.AngleRange})
			Expect(err).NotTo(HaveOccurred())

			bouncedBack := false
			for _, s := range result.States {
				if s.AngleVel < 0 {
					bouncedBack = true
					break
				}
			}
			Expect(bouncedBack).To(BeTrue(),
				"negated gravity should push the pole back toward vertical")
		})

		It("lets the same pole keep falling once gravity is corrected", func() {
			p := cartpole.DefaultParams()
			p.SetToClassicModelWithCorrectGravity()

			start := cartpole.NewState(0, 0, p.AngleRange-0.05, 0.1)
			r := newRunner(p, idlePolicy{})
			result, err := r.Run(context.Background(), start,
				sim.Config{MaxSteps: 100, MaxAbsoluteAngle: p.AngleRange})
			Expect(err).NotTo(HaveOccurred())

			for _, s := range result.States[:result.Steps] {
				if s.Angle >= p.AngleRange {
					break
				}
				Expect(s.AngleVel).To(BeNumerically(">=", 0))
			}
		})
	})

	Describe("an infinite track", func() {
		It("never moves the cart while the pole still swings", func() {
			p := cartpole.DefaultParams()
			p.FiniteTrack = false

			r := newRunner(p, constantPush{cartpole.ActionRight})
			result, err := r.Run(context.Background(), cartpole.InitialState(),
				sim.Config{MaxSteps: 100, MaxAbsoluteAngle: math.Pi / 2})
			Expect(err).NotTo(HaveOccurred())

			for _, s := range result.States {
				Expect(s.X).To(Equal(0.0))
			}
			final := result.States[len(result.States)-1]
			Expect(final.Angle).NotTo(Equal(0.0))
		})
	})
})
