// arbo package verifies inclusion proofs of github.com/vocdoni/arbo Merkle
// trees inside a circuit. The siblings must be unpacked and padded with zeros
// up to the number of levels of the circuit.
package arbo

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/vocdoni/gnark-leaf-gadgets/utils"
)

// intermediateLeafKey function calculates the intermediate leaf key of the
// path position provided. The leaf key is calculated by hashing the sibling
// and the key provided. The position of the sibling and the key is decided by
// the path position. If the current sibling is not valid, the method will
// return the key provided.
func intermediateLeafKey(api frontend.API, hFn utils.Hasher, ipath, valid, key, sibling frontend.Variable) (frontend.Variable, error) {
	// l, r = path == 1 ? sibling, key : key, sibling
	l, r := api.Select(ipath, sibling, key), api.Select(ipath, key, sibling)
	// intermediateLeafKey = H(l | r)
	intermediateLeafKey, err := hFn(api, l, r)
	if err != nil {
		return 0, err
	}
	// newCurrent = valid == 1 ? intermediateLeafKey : key
	return api.Select(valid, intermediateLeafKey, key), nil
}

// isValid function returns 1 if the the sibling provided is a valid sibling or
// 0 otherwise. To check if the sibling is valid, its leaf key and it must be
// different from the previous leaf key and the previous sibling.
func isValid(api frontend.API, sibling, prevSibling, leaf, prevLeaf frontend.Variable) frontend.Variable {
	cmp1, cmp2 := utils.StrictCmp(api, leaf, prevLeaf), utils.StrictCmp(api, sibling, prevSibling)
	return api.Or(cmp1, cmp2)
}

// CheckInclusionProofFlag receives the parameters of an inclusion proof of
// arbo and returns a flag that is 1 if the recalculated root equals the
// provided root, and 0 otherwise. The key must fit in len(siblings) bits.
func CheckInclusionProofFlag(api frontend.API, hFn utils.Hasher, key, value, root frontend.Variable,
	siblings []frontend.Variable,
) (frontend.Variable, error) {
	// calculate the path from the provided key to decide which leaf is the
	// correct one in every level of the tree
	path := api.ToBinary(key, len(siblings))
	// leafKey = H(key | value | 1)
	leafKey, err := hFn(api, key, value, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to compute leaf key: %w", err)
	}
	prevKey := leafKey
	prevSibling := frontend.Variable(0)
	// rebuild the root from the bottom of the path
	for i := len(siblings) - 1; i >= 0; i-- {
		valid := isValid(api, siblings[i], prevSibling, leafKey, prevKey)
		prevKey = leafKey
		prevSibling = siblings[i]
		leafKey, err = intermediateLeafKey(api, hFn, path[i], valid, leafKey, siblings[i])
		if err != nil {
			return 0, fmt.Errorf("failed to compute intermediate leaf key at level %d: %w", i, err)
		}
	}
	return api.IsZero(api.Sub(leafKey, root)), nil
}
