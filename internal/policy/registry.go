package policy

import (
	"fmt"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/sim"
)

// FromName builds a policy by name. params carries the policy's numeric
// knobs; absent keys fall back to sensible defaults.
func FromName(name string, params map[string]float64) (sim.Policy, error) {
	switch name {
	case "none":
		return NewNone(), nil
	case "left":
		return NewConstant(cartpole.ActionLeft), nil
	case "right":
		return NewConstant(cartpole.ActionRight), nil
	case "bangbang":
		gain := params["gain"]
		if gain == 0 {
			gain = 0.5
		}
		return NewBangBang(gain), nil
	case "random":
		seed := int64(params["seed"])
		if seed == 0 {
			seed = 1
		}
		return NewRandom(seed), nil
	}
	return nil, fmt.Errorf("unknown policy: %s", name)
}

// Names lists the policies FromName accepts.
func Names() []string {
	return []string{"none", "left", "right", "bangbang", "random"}
}
