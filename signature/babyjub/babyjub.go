// babyjub package verifies iden3 EdDSA-Poseidon signatures over BabyJubJub,
// the scheme used by circom circuits and iden3 wallets:
//
//	hm = Poseidon(R8.X, R8.Y, A.X, A.Y, msg)
//	[S]B8 == R8 + [8*hm]A
//
// The wires hold the coordinates in the iden3 (standard twisted Edwards)
// form, they are moved to the reduced form that gnark implements inside the
// circuit.
package babyjub

import (
	"fmt"
	"math/big"

	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/iden3/go-iden3-crypto/babyjub"
	"github.com/iden3/go-iden3-crypto/poseidon"
	tw "github.com/vocdoni/gnark-leaf-gadgets/internal/twistededwards"
	"github.com/vocdoni/gnark-leaf-gadgets/signature"
	"github.com/vocdoni/gnark-leaf-gadgets/utils"
)

// PublicKey holds the wires of the public key point in the iden3 form.
type PublicKey struct {
	A twistededwards.Point
}

// Signature holds the wires of the R8 point in the iden3 form and the S
// scalar.
type Signature struct {
	R8 twistededwards.Point
	S  frontend.Variable
}

// Scheme implements signature.Scheme and signature.Committer for iden3
// EdDSA-Poseidon signatures.
type Scheme struct{}

var _ signature.CommittingScheme[PublicKey, Signature] = Scheme{}

// Verify returns 1 if sig is a valid signature of msg under pk and 0
// otherwise.
func (Scheme) Verify(api frontend.API, pk PublicKey, sig Signature, msg frontend.Variable) (frontend.Variable, error) {
	curve, err := twistededwards.NewEdCurve(api, tedwards.BN254)
	if err != nil {
		return 0, fmt.Errorf("failed to init the curve: %w", err)
	}
	params := curve.Params()
	// the challenge is computed over the iden3 coordinates
	hm, err := utils.PoseidonHasher(api, sig.R8.X, sig.R8.Y, pk.A.X, pk.A.Y, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to hash the challenge: %w", err)
	}
	a := tw.FromTEtoRTECircuit(api, pk.A)
	r8 := tw.FromTEtoRTECircuit(api, sig.R8)
	// the gnark base point is B8 in the reduced form
	base := twistededwards.Point{X: params.Base[0], Y: params.Base[1]}
	// [hm]([8]A) instead of [8*hm]A, the product could wrap the field
	a8 := curve.Double(curve.Double(curve.Double(a)))
	// [S]B8 - [hm][8]A == R8
	q := curve.DoubleBaseScalarMul(base, curve.Neg(a8), sig.S, hm)
	return api.And(
		api.And(tw.IsOnCurve(api, params, a), tw.IsOnCurve(api, params, r8)),
		tw.IsEqual(api, q, r8),
	), nil
}

// PublicKeyHash returns Poseidon(A.X, A.Y) over the iden3 coordinates.
func (Scheme) PublicKeyHash(api frontend.API, pk PublicKey) (frontend.Variable, error) {
	return utils.PoseidonHasher(api, pk.A.X, pk.A.Y)
}

// AssignPublicKey decodes a compressed iden3 public key into dst.
func (Scheme) AssignPublicKey(dst *PublicKey, raw []byte) error {
	pk, err := decodePublicKey(raw)
	if err != nil {
		return err
	}
	dst.A.X = new(big.Int).Set(pk.X)
	dst.A.Y = new(big.Int).Set(pk.Y)
	return nil
}

// AssignSignature decodes a compressed iden3 signature into dst. Signatures
// with S out of the subgroup order are rejected, as iden3 does.
func (Scheme) AssignSignature(dst *Signature, raw []byte) error {
	var comp babyjub.SignatureComp
	if len(raw) != len(comp) {
		return fmt.Errorf("%w: expected %d bytes, got %d", signature.ErrInvalidSignature, len(comp), len(raw))
	}
	copy(comp[:], raw)
	sig, err := comp.Decompress()
	if err != nil {
		return fmt.Errorf("%w: %w", signature.ErrInvalidSignature, err)
	}
	if sig.S.Cmp(babyjub.SubOrder) >= 0 {
		return fmt.Errorf("%w: S is not lower than the subgroup order", signature.ErrInvalidSignature)
	}
	dst.R8.X = new(big.Int).Set(sig.R8.X)
	dst.R8.Y = new(big.Int).Set(sig.R8.Y)
	dst.S = new(big.Int).Set(sig.S)
	return nil
}

// HashPublicKey is the native counterpart of PublicKeyHash for a compressed
// public key.
func HashPublicKey(raw []byte) (*big.Int, error) {
	pk, err := decodePublicKey(raw)
	if err != nil {
		return nil, err
	}
	return poseidon.Hash([]*big.Int{pk.X, pk.Y})
}

func decodePublicKey(raw []byte) (*babyjub.PublicKey, error) {
	var comp babyjub.PublicKeyComp
	if len(raw) != len(comp) {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", signature.ErrInvalidPublicKey, len(comp), len(raw))
	}
	copy(comp[:], raw)
	pk, err := comp.Decompress()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", signature.ErrInvalidPublicKey, err)
	}
	return pk, nil
}
