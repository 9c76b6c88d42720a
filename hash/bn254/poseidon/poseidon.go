// poseidon package provides the circom compatible Poseidon hash over the
// BN254 scalar field, the same function that iden3 uses natively for
// EdDSA-Poseidon signatures and that arbo uses for its Poseidon trees.
package poseidon

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/mdehoog/poseidon/circuits/poseidon"
)

// MaxInputs defines the maximum number of inputs supported by Hash.
const MaxInputs = 16

// Hash returns the Poseidon hash of the provided inputs. It supports from 1
// to MaxInputs inputs and returns an error otherwise.
func Hash(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	if l := len(inputs); l == 0 || l > MaxInputs {
		return 0, fmt.Errorf("poseidon hash supports from 1 to %d inputs, got %d", MaxInputs, l)
	}
	return poseidon.Hash(api, inputs), nil
}
