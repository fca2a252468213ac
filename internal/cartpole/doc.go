// Package cartpole implements the cart-and-pole balancing domain: a cart on a
// finite track with a pole on a hinge, driven by a horizontal force.
//
// Two dynamics formulations are provided:
//
//   - the classic Barto, Sutton, and Anderson model, kept for historical
//     comparison even though its friction and (optionally) gravity terms are
//     physically wrong
//   - the corrected model after Florian, which resolves the sign of the
//     normal contact force before applying Coulomb friction
//
// # Example
//
//	p := cartpole.DefaultParams()
//	d, _ := cartpole.New(p)
//	s := cartpole.InitialState()
//	d.Apply(&s, cartpole.ActionRight)
//
// # Thread Safety
//
// A Domain and its States are NOT safe for concurrent use. Independent
// episodes may run concurrently as long as each goroutine owns its own
// Domain/State pair; the package keeps no shared mutable state.
package cartpole
