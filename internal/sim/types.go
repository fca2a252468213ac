package sim

import (
	"fmt"

	"github.com/san-kum/cartpole/internal/cartpole"
)

// Policy picks the push applied at each step.
type Policy interface {
	Act(s cartpole.State, step int) cartpole.Action
}

// Seedable is implemented by stochastic policies so an ensemble can give
// each run an independent stream.
type Seedable interface {
	Seed(seed int64)
}

// Metric accumulates a scalar over one episode.
type Metric interface {
	Name() string
	Observe(s cartpole.State, a cartpole.Action, step int)
	Value() float64
	Reset()
}

// Observer is notified of every step as it happens.
type Observer interface {
	OnStep(s cartpole.State, a cartpole.Action, step int)
}

// Config bounds a single episode.
type Config struct {
	// MaxSteps caps the episode length; the episode also ends early on
	// task failure.
	MaxSteps int
	// MaxAbsoluteAngle overrides the failure angle in radians. Zero keeps
	// the default threshold.
	MaxAbsoluteAngle float64
	// ValidateState aborts the episode if a step produces NaN or Inf.
	ValidateState bool
	// Seed is handed to the policy when it is Seedable.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		MaxSteps:      500,
		ValidateState: true,
	}
}

// Result is the trajectory of one episode. States has one more entry than
// Actions and Rewards; Rewards[i] scores the transition into States[i+1].
type Result struct {
	States     []cartpole.State
	Actions    []cartpole.Action
	Rewards    []float64
	Steps      int
	Terminated bool
	Return     float64
	Metrics    map[string]float64
	Errors     []error
}

// EpisodeError marks a step that produced an unusable state.
type EpisodeError struct {
	Step    int
	Message string
}

func (e EpisodeError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Message)
}
