// ecdsa package verifies Ethereum (secp256k1) ECDSA signatures inside a BN254
// circuit using emulated arithmetic. The message is a native field element
// that is signed as its 32 bytes big-endian encoding, so the signer signs the
// same value that the circuit receives.
package ecdsa

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/emulated/sw_emulated"
	"github.com/consensys/gnark/std/hash/sha3"
	"github.com/consensys/gnark/std/math/emulated"
	stdecdsa "github.com/consensys/gnark/std/signature/ecdsa"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vocdoni/gnark-leaf-gadgets/signature"
	"github.com/vocdoni/gnark-leaf-gadgets/utils"
)

type (
	// PublicKey holds the emulated coordinates of the public key.
	PublicKey = stdecdsa.PublicKey[emulated.Secp256k1Fp, emulated.Secp256k1Fr]
	// Signature holds the emulated R and S scalars.
	Signature = stdecdsa.Signature[emulated.Secp256k1Fr]
)

// Scheme implements signature.Scheme and signature.Committer for Ethereum
// signatures. The commitment of a public key is its Ethereum address.
type Scheme struct{}

var _ signature.CommittingScheme[PublicKey, Signature] = Scheme{}

// Verify returns 1 if sig is a valid signature of msg under pk and 0
// otherwise, comparing the bits of R with the bits of the x coordinate of
// [msg/S]G + [R/S]pk.
func (Scheme) Verify(api frontend.API, pk PublicKey, sig Signature, msg frontend.Variable) (frontend.Variable, error) {
	cr, err := sw_emulated.New[emulated.Secp256k1Fp, emulated.Secp256k1Fr](api, sw_emulated.GetSecp256k1Params())
	if err != nil {
		return 0, fmt.Errorf("failed to init the curve: %w", err)
	}
	scalarApi, err := emulated.NewField[emulated.Secp256k1Fr](api)
	if err != nil {
		return 0, fmt.Errorf("failed to init the scalar field: %w", err)
	}
	baseApi, err := emulated.NewField[emulated.Secp256k1Fp](api)
	if err != nil {
		return 0, fmt.Errorf("failed to init the base field: %w", err)
	}
	// the native modulus is lower than the secp256k1 order, so msg is a
	// canonical scalar
	m := scalarApi.FromBits(api.ToBinary(msg, api.Compiler().FieldBitLen())...)
	msInv := scalarApi.Div(m, &sig.S)
	rsInv := scalarApi.Div(&sig.R, &sig.S)
	pkpt := sw_emulated.AffinePoint[emulated.Secp256k1Fp](pk)
	// q = [rsInv]pk + [msInv]G
	q := cr.JointScalarMulBase(&pkpt, rsInv, msInv)
	qxBits := baseApi.ToBits(baseApi.Reduce(&q.X))
	rBits := scalarApi.ToBits(&sig.R)
	if len(rBits) != len(qxBits) {
		return 0, fmt.Errorf("unexpected bit lengths: %d != %d", len(rBits), len(qxBits))
	}
	diff := frontend.Variable(0)
	for i := range rBits {
		diff = api.Add(diff, api.Xor(rBits[i], qxBits[i]))
	}
	return api.IsZero(diff), nil
}

// PublicKeyHash derives the Ethereum address of pk by hashing its
// coordinates with Keccak256 and returning the last 20 bytes of the hash as
// a variable.
func (Scheme) PublicKeyHash(api frontend.API, pk PublicKey) (frontend.Variable, error) {
	xBytes, err := utils.ElemToU8(api, pk.X)
	if err != nil {
		return 0, err
	}
	yBytes, err := utils.ElemToU8(api, pk.Y)
	if err != nil {
		return 0, err
	}
	keccak, err := sha3.NewLegacyKeccak256(api)
	if err != nil {
		return 0, err
	}
	keccak.Write(append(utils.SwapEndianness(xBytes), utils.SwapEndianness(yBytes)...))
	return utils.U8ToVar(api, keccak.Sum()[12:]), nil
}

// AssignPublicKey decodes an uncompressed (65 bytes) or compressed (33 bytes)
// secp256k1 public key into dst.
func (Scheme) AssignPublicKey(dst *PublicKey, raw []byte) error {
	pk, err := decodePublicKey(raw)
	if err != nil {
		return err
	}
	dst.X = emulated.ValueOf[emulated.Secp256k1Fp](pk.X)
	dst.Y = emulated.ValueOf[emulated.Secp256k1Fp](pk.Y)
	return nil
}

// AssignSignature decodes a [R || S] or [R || S || V] signature into dst.
func (Scheme) AssignSignature(dst *Signature, raw []byte) error {
	if len(raw) != crypto.SignatureLength && len(raw) != crypto.SignatureLength-1 {
		return fmt.Errorf("%w: expected %d or %d bytes, got %d", signature.ErrInvalidSignature,
			crypto.SignatureLength-1, crypto.SignatureLength, len(raw))
	}
	r := new(big.Int).SetBytes(raw[:32])
	s := new(big.Int).SetBytes(raw[32:64])
	var v byte
	if len(raw) == crypto.SignatureLength {
		v = raw[64]
	}
	if !crypto.ValidateSignatureValues(v, r, s, false) {
		return fmt.Errorf("%w: values out of range", signature.ErrInvalidSignature)
	}
	dst.R = emulated.ValueOf[emulated.Secp256k1Fr](r)
	dst.S = emulated.ValueOf[emulated.Secp256k1Fr](s)
	return nil
}

// HashPublicKey is the native counterpart of PublicKeyHash, it returns the
// Ethereum address of the encoded public key.
func HashPublicKey(raw []byte) (*big.Int, error) {
	pk, err := decodePublicKey(raw)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(crypto.PubkeyToAddress(*pk).Bytes()), nil
}

func decodePublicKey(raw []byte) (*ecdsa.PublicKey, error) {
	var (
		pk  *ecdsa.PublicKey
		err error
	)
	switch len(raw) {
	case 33:
		pk, err = crypto.DecompressPubkey(raw)
	default:
		pk, err = crypto.UnmarshalPubkey(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", signature.ErrInvalidPublicKey, err)
	}
	return pk, nil
}
