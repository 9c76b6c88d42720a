// selector package provides the two gates that a verify-or-skip leaf is built
// from: a boolean constraint over a wire and a selector gate that picks one of
// two wires depending on a boolean wire.
//
// The selector gate evaluates z = x + s*(y - x). Over R1CS the subtraction and
// the addition are linear combinations, so the whole gate costs a single
// multiplication constraint.
package selector

import "github.com/consensys/gnark/frontend"

// Bool is a wire that is constrained to hold 0 or 1. The only way to get one
// is NewBool, which registers the boolean constraint, so any Bool received by
// a gadget is already known to be boolean.
type Bool struct {
	v frontend.Variable
}

// NewBool registers the constraint v*(v-1) == 0 and returns v as a Bool.
// Assigning any other value to v makes the system unsatisfiable.
func NewBool(api frontend.API, v frontend.Variable) Bool {
	AssertIsBoolean(api, v)
	return Bool{v: v}
}

// AssertIsBoolean constrains v to be 0 or 1.
func AssertIsBoolean(api frontend.API, v frontend.Variable) {
	api.AssertIsBoolean(v)
}

// Variable returns the underlying wire.
func (b Bool) Variable() frontend.Variable {
	return b.v
}

// Select returns x when s is 0 and y when s is 1.
func Select(api frontend.API, x, y frontend.Variable, s Bool) frontend.Variable {
	return interpolate(api, x, y, s.v)
}

// interpolate returns x + s*(y - x). It is only a selection when s is boolean,
// for other values it is the line through (0, x) and (1, y) evaluated at s.
func interpolate(api frontend.API, x, y, s frontend.Variable) frontend.Variable {
	// d = y - x
	d := api.Sub(y, x)
	// z = x + s*d
	return api.Add(x, api.Mul(s, d))
}
