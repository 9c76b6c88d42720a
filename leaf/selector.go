package leaf

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/vocdoni/gnark-leaf-gadgets/selector"
	"github.com/vocdoni/gnark-leaf-gadgets/signature"
)

// SelectorInput is the input of a standalone leaf, it carries the value of
// the selector with the encoded public key and signature.
type SelectorInput struct {
	Selector *big.Int
	Input
}

// SelectorTargets contains the wires of a standalone leaf. Selector is the
// selector wire and SelectorBool is the same wire once constrained to be
// boolean, it is set by AddTargets.
type SelectorTargets[PK, Sig any] struct {
	Selector     frontend.Variable
	SelectorBool selector.Bool `gnark:"-"`
	Leaf         Targets[PK, Sig]
}

// SelectorGadget is the verify-or-skip leaf that owns its selector wire.
type SelectorGadget[PK, Sig any] struct {
	inner *Gadget[PK, Sig]
}

// NewSelector returns a standalone leaf gadget that verifies signatures with
// the provided scheme.
func NewSelector[PK, Sig any](scheme signature.Scheme[PK, Sig]) *SelectorGadget[PK, Sig] {
	return &SelectorGadget[PK, Sig]{inner: New(scheme)}
}

// AddTargets constrains the selector wire to be boolean and registers the
// constraints of the leaf over it.
func (g *SelectorGadget[PK, Sig]) AddTargets(api frontend.API, targets *SelectorTargets[PK, Sig], msg frontend.Variable) error {
	targets.SelectorBool = selector.NewBool(api, targets.Selector)
	return g.inner.AddTargets(api, &targets.Leaf, targets.SelectorBool, msg)
}

// SetTargets assigns the selector, the public key and the signature of input
// to targets. The selector is not checked to be boolean here, a value other
// than 0 or 1 makes the system unsatisfiable.
func (g *SelectorGadget[PK, Sig]) SetTargets(targets *SelectorTargets[PK, Sig], input *SelectorInput) error {
	if targets == nil || input == nil {
		return fmt.Errorf("%w: nil targets or input", ErrMissingWitness)
	}
	if input.Selector == nil {
		return fmt.Errorf("%w: no value", ErrInvalidSelector)
	}
	if err := g.inner.SetTargets(&targets.Leaf, &input.Input); err != nil {
		return err
	}
	targets.Selector = new(big.Int).Set(input.Selector)
	return nil
}
