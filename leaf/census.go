package leaf

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/mdehoog/gnark-circom-smt/circuits/smt"
	"github.com/vocdoni/gnark-leaf-gadgets/selector"
	"github.com/vocdoni/gnark-leaf-gadgets/signature"
	"github.com/vocdoni/gnark-leaf-gadgets/tree/arbo"
	"github.com/vocdoni/gnark-leaf-gadgets/utils"
)

// CensusLevels is the number of levels of the census trees, it bounds the
// census keys to 160 bits.
const CensusLevels = 160

// CensusInput is the input of a census leaf: the signature and an arbo
// inclusion proof of the public key commitment under Key.
type CensusInput struct {
	Input
	Root     *big.Int
	Key      *big.Int
	Siblings []*big.Int
}

// CensusTargets contains the wires of a census leaf.
type CensusTargets[PK, Sig any] struct {
	Leaf     Targets[PK, Sig]
	Root     frontend.Variable
	Key      frontend.Variable
	Siblings [CensusLevels]frontend.Variable
}

// CensusGadget is a verify-or-skip leaf that, when not skipped, also
// requires the signer to be part of a census: the commitment of the public
// key must be the value of the leaf under Key of the arbo Poseidon tree with
// the given Root. Enclosing circuits that share a census must constrain the
// Root of every leaf to the same wire.
type CensusGadget[PK, Sig any] struct {
	scheme signature.CommittingScheme[PK, Sig]
}

var _ InnerCircuit[CensusInput, CensusTargets[struct{}, struct{}]] = (*CensusGadget[struct{}, struct{}])(nil)

// NewCensus returns a census leaf gadget for the provided scheme.
func NewCensus[PK, Sig any](scheme signature.CommittingScheme[PK, Sig]) *CensusGadget[PK, Sig] {
	return &CensusGadget[PK, Sig]{scheme: scheme}
}

// AddTargets registers the constraints of the census leaf. The key must fit
// in CensusLevels bits even when the leaf is skipped.
func (g *CensusGadget[PK, Sig]) AddTargets(api frontend.API, targets *CensusTargets[PK, Sig], sel selector.Bool, msg frontend.Variable) error {
	valid, err := g.scheme.Verify(api, targets.Leaf.PublicKey, targets.Leaf.Signature, msg)
	if err != nil {
		return fmt.Errorf("failed to add the signature verification: %w", err)
	}
	value, err := g.scheme.PublicKeyHash(api, targets.Leaf.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to add the public key commitment: %w", err)
	}
	included, err := arbo.CheckInclusionProofFlag(api, utils.PoseidonHasher,
		targets.Key, value, targets.Root, targets.Siblings[:])
	if err != nil {
		return fmt.Errorf("failed to add the census proof: %w", err)
	}
	assertValidOrSkipped(api, smt.MultiAnd(api, []frontend.Variable{valid, included}), sel)
	return nil
}

// SetTargets assigns the signature and the census proof of input to
// targets. The whole input is validated first, on error targets is left
// untouched.
func (g *CensusGadget[PK, Sig]) SetTargets(targets *CensusTargets[PK, Sig], input *CensusInput) error {
	if targets == nil || input == nil {
		return fmt.Errorf("%w: nil targets or input", ErrMissingWitness)
	}
	if input.Root == nil || input.Key == nil {
		return fmt.Errorf("%w: missing root or key", ErrInvalidCensusProof)
	}
	if input.Key.BitLen() > CensusLevels {
		return fmt.Errorf("%w: key exceeds %d bits", ErrInvalidCensusProof, CensusLevels)
	}
	if len(input.Siblings) != CensusLevels {
		return fmt.Errorf("%w: expected %d siblings, got %d", ErrInvalidCensusProof, CensusLevels, len(input.Siblings))
	}
	for i, s := range input.Siblings {
		if s == nil {
			return fmt.Errorf("%w: nil sibling at level %d", ErrInvalidCensusProof, i)
		}
	}
	var decoded Targets[PK, Sig]
	if err := New[PK, Sig](g.scheme).SetTargets(&decoded, &input.Input); err != nil {
		return err
	}
	targets.Leaf = decoded
	targets.Root = new(big.Int).Set(input.Root)
	targets.Key = new(big.Int).Set(input.Key)
	for i, s := range input.Siblings {
		targets.Siblings[i] = new(big.Int).Set(s)
	}
	return nil
}
