// signature package defines the contract that a signature verification
// sub-circuit must fulfil to be used inside a verify-or-skip leaf. The
// implementations live in the subpackages (eddsa, babyjub and ecdsa).
package signature

import (
	"errors"

	"github.com/consensys/gnark/frontend"
)

var (
	// ErrInvalidPublicKey is returned when the encoding of a public key can
	// not be decoded into the wires of the scheme.
	ErrInvalidPublicKey = errors.New("invalid public key")
	// ErrInvalidSignature is returned when the encoding of a signature can
	// not be decoded into the wires of the scheme.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Scheme is a signature verification sub-circuit. PK and Sig are the structs
// that hold the wires of a public key and a signature; they are allocated by
// gnark when the enclosing circuit is parsed, so the zero value of both types
// must be a valid circuit definition.
type Scheme[PK, Sig any] interface {
	// Verify registers the constraints of the verification of sig over msg
	// under pk and returns a wire that is 1 if the signature is valid and 0
	// otherwise. It must not assert the validity of the signature, a well
	// formed but invalid signature must leave the system satisfiable.
	Verify(api frontend.API, pk PK, sig Sig, msg frontend.Variable) (frontend.Variable, error)
	// AssignPublicKey decodes raw into the wires of dst.
	AssignPublicKey(dst *PK, raw []byte) error
	// AssignSignature decodes raw into the wires of dst.
	AssignSignature(dst *Sig, raw []byte) error
}

// Committer is implemented by the schemes that can commit to a public key
// with a single native field element. The commitment is used as the value of
// the census leaf of the key.
type Committer[PK any] interface {
	PublicKeyHash(api frontend.API, pk PK) (frontend.Variable, error)
}

// CommittingScheme is a Scheme that also implements Committer.
type CommittingScheme[PK, Sig any] interface {
	Scheme[PK, Sig]
	Committer[PK]
}
