// leaf package implements the verify-or-skip leaf of a recursive signature
// aggregation tree. A leaf verifies a signature over the message of the tree
// unless its selector is set, in which case the verification is delegated to
// a separate recursive proof and the signature wires are left unconstrained:
//
//	valid    = Verify(pk, sig, msg)
//	expected = selector ? 1 : valid
//	expected == 1
//
// Every gadget follows a two-phase contract. AddTargets registers the
// constraints over the wires that gnark allocated for the targets struct
// when parsing the enclosing circuit, it never reads witness values.
// SetTargets writes the values of an input into an assignment of the same
// targets struct.
package leaf

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
	"github.com/vocdoni/gnark-leaf-gadgets/selector"
	"github.com/vocdoni/gnark-leaf-gadgets/signature"
)

var (
	// ErrMissingWitness is returned when an input or a wire has no value.
	ErrMissingWitness = errors.New("missing witness")
	// ErrInvalidSelector is returned when the selector of a standalone leaf
	// has no value.
	ErrInvalidSelector = errors.New("invalid selector")
	// ErrInvalidCensusProof is returned when a census proof does not fit the
	// census targets.
	ErrInvalidCensusProof = errors.New("invalid census proof")
)

// InnerCircuit is the two-phase contract of the gadgets that are embedded in
// a node of the tree. I is the off-circuit input and T the struct that holds
// the wires of the gadget. The selector and the message are wires of the
// enclosing circuit.
type InnerCircuit[I, T any] interface {
	AddTargets(api frontend.API, targets *T, sel selector.Bool, msg frontend.Variable) error
	SetTargets(targets *T, input *I) error
}

// Input contains the encoded public key and signature of a leaf, in the
// encoding of the signature scheme of the gadget.
type Input struct {
	PublicKey []byte
	Signature []byte
}

// Targets contains the wires of the public key and the signature of a leaf.
type Targets[PK, Sig any] struct {
	PublicKey PK
	Signature Sig
}

// Gadget is the verify-or-skip leaf that takes its selector from the
// enclosing tree.
type Gadget[PK, Sig any] struct {
	scheme signature.Scheme[PK, Sig]
}

var _ InnerCircuit[Input, Targets[struct{}, struct{}]] = (*Gadget[struct{}, struct{}])(nil)

// New returns a leaf gadget that verifies signatures with the provided
// scheme.
func New[PK, Sig any](scheme signature.Scheme[PK, Sig]) *Gadget[PK, Sig] {
	return &Gadget[PK, Sig]{scheme: scheme}
}

// AddTargets registers the constraints of the leaf. If sel is 0 the
// signature in targets must be a valid signature of msg; if it is 1 the
// system is satisfiable for any signature.
func (g *Gadget[PK, Sig]) AddTargets(api frontend.API, targets *Targets[PK, Sig], sel selector.Bool, msg frontend.Variable) error {
	valid, err := g.scheme.Verify(api, targets.PublicKey, targets.Signature, msg)
	if err != nil {
		return fmt.Errorf("failed to add the signature verification: %w", err)
	}
	assertValidOrSkipped(api, valid, sel)
	log := logger.Logger()
	log.Debug().Str("scheme", fmt.Sprintf("%T", g.scheme)).Msg("verify-or-skip leaf added")
	return nil
}

// SetTargets assigns the public key and the signature of input to targets.
// On error targets is left untouched.
func (g *Gadget[PK, Sig]) SetTargets(targets *Targets[PK, Sig], input *Input) error {
	if targets == nil || input == nil {
		return fmt.Errorf("%w: nil targets or input", ErrMissingWitness)
	}
	var decoded Targets[PK, Sig]
	if err := g.scheme.AssignPublicKey(&decoded.PublicKey, input.PublicKey); err != nil {
		return fmt.Errorf("failed to assign the public key: %w", err)
	}
	if err := g.scheme.AssignSignature(&decoded.Signature, input.Signature); err != nil {
		return fmt.Errorf("failed to assign the signature: %w", err)
	}
	*targets = decoded
	return nil
}

// assertValidOrSkipped constrains valid to be 1 unless sel is 1.
func assertValidOrSkipped(api frontend.API, valid frontend.Variable, sel selector.Bool) {
	expected := selector.Select(api, valid, 1, sel)
	api.AssertIsEqual(expected, 1)
}
