package cartpole

// Action names.
const (
	ActionNameLeft  = "left"
	ActionNameRight = "right"
)

// Action applies force in a fixed direction. Dir is multiplied by the
// domain's ForceMag when applied.
type Action struct {
	Name string
	Dir  float64
}

var (
	ActionLeft  = Action{Name: ActionNameLeft, Dir: -1}
	ActionRight = Action{Name: ActionNameRight, Dir: 1}
)

// Domain binds a validated parameter set to the stepper.
type Domain struct {
	Params Params
}

// New validates p and returns a domain for it.
func New(p Params) (*Domain, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Domain{Params: p}, nil
}

// Actions returns the movement actions of the task.
func (d *Domain) Actions() []Action {
	return []Action{ActionLeft, ActionRight}
}

// Apply performs a's force for one time step, mutating s in place.
func (d *Domain) Apply(s *State, a Action) {
	Step(&d.Params, s, a.Dir)
}

// Step applies a raw force direction for one time step.
func (d *Domain) Step(s *State, dir float64) {
	Step(&d.Params, s, dir)
}
