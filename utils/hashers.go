package utils

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
	"github.com/vocdoni/gnark-leaf-gadgets/hash/bn254/poseidon"
)

// Hasher is the signature of the in-circuit hash functions that the gadgets
// accept, so the same code can run over MiMC or Poseidon.
type Hasher func(frontend.API, ...frontend.Variable) (frontend.Variable, error)

// MiMCHasher hashes the data provided using the MiMC hash function of the
// current compiler field. It is the hash that gnark-crypto uses to compute the
// challenge of its native EdDSA signatures.
func MiMCHasher(api frontend.API, data ...frontend.Variable) (frontend.Variable, error) {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return 0, err
	}
	h.Write(data...)
	return h.Sum(), nil
}

// PoseidonHasher hashes the data provided using the circom compatible
// Poseidon hash function. It is used by the iden3 signatures and by the
// arbo census trees.
func PoseidonHasher(api frontend.API, data ...frontend.Variable) (frontend.Variable, error) {
	return poseidon.Hash(api, data...)
}
