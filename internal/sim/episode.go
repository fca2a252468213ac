package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/cartpole/internal/cartpole"
)

// Runner plays episodes of the balancing task: a policy picks a push, the
// domain advances the physics, and the terminal function decides when the
// pole or the cart has failed.
type Runner struct {
	domain    *cartpole.Domain
	policy    Policy
	metrics   []Metric
	observers []Observer
}

func New(domain *cartpole.Domain, policy Policy) *Runner {
	return &Runner{
		domain:    domain,
		policy:    policy,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run plays one episode from start. The trajectory collected so far is
// returned even when the context is cancelled mid-episode.
func (r *Runner) Run(ctx context.Context, start cartpole.State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	if s, ok := r.policy.(Seedable); ok && cfg.Seed != 0 {
		s.Seed(cfg.Seed)
	}

	terminal, reward := r.classifiers(cfg)

	result := &Result{
		States:  make([]cartpole.State, 0, cfg.MaxSteps+1),
		Actions: make([]cartpole.Action, 0, cfg.MaxSteps),
		Rewards: make([]float64, 0, cfg.MaxSteps),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	s := start
	result.States = append(result.States, s)

	for i := 0; i < cfg.MaxSteps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		a := r.policy.Act(s, i)

		for _, m := range r.metrics {
			m.Observe(s, a, i)
		}
		for _, obs := range r.observers {
			obs.OnStep(s, a, i)
		}

		prev := s
		r.domain.Apply(&s, a)

		if cfg.ValidateState && !s.IsValid() {
			result.Errors = append(result.Errors,
				EpisodeError{Step: i, Message: "invalid state (NaN/Inf)"})
			s = prev
			break
		}

		result.Steps++
		result.States = append(result.States, s)
		result.Actions = append(result.Actions, a)

		rw := reward.Reward(prev, a, s)
		result.Rewards = append(result.Rewards, rw)
		result.Return += rw

		if terminal.IsTerminal(s) {
			result.Terminated = true
			break
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback plays an episode reporting each step to callback, which
// can stop the episode by returning false. Used by the interactive viewer.
func (r *Runner) RunWithCallback(ctx context.Context, start cartpole.State, cfg Config, callback func(s cartpole.State, a cartpole.Action, step int) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	terminal, _ := r.classifiers(cfg)

	s := start
	for i := 0; i < cfg.MaxSteps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a := r.policy.Act(s, i)
		if !callback(s, a, i) {
			return nil
		}

		r.domain.Apply(&s, a)
		if cfg.ValidateState && !s.IsValid() {
			return EpisodeError{Step: i, Message: "invalid state (NaN/Inf)"}
		}

		if terminal.IsTerminal(s) {
			return nil
		}
	}

	return nil
}

func (r *Runner) classifiers(cfg Config) (*cartpole.TerminalFn, *cartpole.RewardFn) {
	p := r.domain.Params
	if cfg.MaxAbsoluteAngle > 0 {
		return cartpole.NewTerminalFnWithAngle(p, cfg.MaxAbsoluteAngle),
			cartpole.NewRewardFnWithAngle(p, cfg.MaxAbsoluteAngle)
	}
	return cartpole.NewTerminalFn(p), cartpole.NewRewardFn(p)
}

func validateConfig(cfg Config) error {
	if cfg.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", cfg.MaxSteps)
	}
	if cfg.MaxAbsoluteAngle < 0 {
		return fmt.Errorf("max absolute angle must be non-negative, got %f", cfg.MaxAbsoluteAngle)
	}
	return nil
}
