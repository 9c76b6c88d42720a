// eddsa package verifies EdDSA signatures over the twisted Edwards curve
// embedded in BN254, as produced by the gnark-crypto signer with the MiMC
// hash function:
//
//	h = MiMC(R.X, R.Y, A.X, A.Y, msg)
//	[8]([S]B - [h]A - R) == O
package eddsa

import (
	"fmt"
	"math/big"

	nativeeddsa "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards/eddsa"
	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	stdeddsa "github.com/consensys/gnark/std/signature/eddsa"
	"github.com/iden3/go-iden3-crypto/poseidon"
	tw "github.com/vocdoni/gnark-leaf-gadgets/internal/twistededwards"
	"github.com/vocdoni/gnark-leaf-gadgets/signature"
	"github.com/vocdoni/gnark-leaf-gadgets/utils"
)

type (
	// PublicKey holds the wires of the A point.
	PublicKey = stdeddsa.PublicKey
	// Signature holds the wires of the R point and the S scalar.
	Signature = stdeddsa.Signature
)

// Scheme implements signature.Scheme and signature.Committer for gnark-crypto
// EdDSA signatures over BN254.
type Scheme struct{}

var _ signature.CommittingScheme[PublicKey, Signature] = Scheme{}

// Verify returns 1 if sig is a valid signature of msg under pk and 0
// otherwise. Both points must be on the curve to be accepted.
func (Scheme) Verify(api frontend.API, pk PublicKey, sig Signature, msg frontend.Variable) (frontend.Variable, error) {
	curve, err := twistededwards.NewEdCurve(api, tedwards.BN254)
	if err != nil {
		return 0, fmt.Errorf("failed to init the curve: %w", err)
	}
	params := curve.Params()
	// h = H(R, A, M)
	h, err := utils.MiMCHasher(api, sig.R.X, sig.R.Y, pk.A.X, pk.A.Y, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to hash the challenge: %w", err)
	}
	base := twistededwards.Point{X: params.Base[0], Y: params.Base[1]}
	// q = [S]B - [h]A - R
	q := curve.DoubleBaseScalarMul(base, curve.Neg(pk.A), sig.S, h)
	q = curve.Add(q, curve.Neg(sig.R))
	// clear the cofactor
	switch params.Cofactor.Uint64() {
	case 4:
		q = curve.Double(curve.Double(q))
	case 8:
		q = curve.Double(curve.Double(curve.Double(q)))
	default:
		log := logger.Logger()
		log.Warn().Str("cofactor", params.Cofactor.String()).Msg("curve cofactor is not cleared")
	}
	return api.And(
		api.And(tw.IsOnCurve(api, params, pk.A), tw.IsOnCurve(api, params, sig.R)),
		tw.IsIdentity(api, q),
	), nil
}

// PublicKeyHash returns Poseidon(A.X, A.Y).
func (Scheme) PublicKeyHash(api frontend.API, pk PublicKey) (frontend.Variable, error) {
	return utils.PoseidonHasher(api, pk.A.X, pk.A.Y)
}

// AssignPublicKey decodes a compressed gnark-crypto public key into dst.
func (Scheme) AssignPublicKey(dst *PublicKey, raw []byte) error {
	var pk nativeeddsa.PublicKey
	if _, err := pk.SetBytes(raw); err != nil {
		return fmt.Errorf("%w: %w", signature.ErrInvalidPublicKey, err)
	}
	dst.A.X = pk.A.X.BigInt(new(big.Int))
	dst.A.Y = pk.A.Y.BigInt(new(big.Int))
	return nil
}

// AssignSignature decodes a compressed gnark-crypto signature into dst.
func (Scheme) AssignSignature(dst *Signature, raw []byte) error {
	var sig nativeeddsa.Signature
	if _, err := sig.SetBytes(raw); err != nil {
		return fmt.Errorf("%w: %w", signature.ErrInvalidSignature, err)
	}
	dst.R.X = sig.R.X.BigInt(new(big.Int))
	dst.R.Y = sig.R.Y.BigInt(new(big.Int))
	dst.S = new(big.Int).SetBytes(sig.S[:])
	return nil
}

// HashPublicKey is the native counterpart of PublicKeyHash for a compressed
// public key.
func HashPublicKey(raw []byte) (*big.Int, error) {
	var pk nativeeddsa.PublicKey
	if _, err := pk.SetBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", signature.ErrInvalidPublicKey, err)
	}
	return poseidon.Hash([]*big.Int{pk.A.X.BigInt(new(big.Int)), pk.A.Y.BigInt(new(big.Int))})
}
