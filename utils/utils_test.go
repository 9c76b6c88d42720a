package utils

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/test"
	qt "github.com/frankban/quicktest"
)

type testElemToVarCircuit struct {
	Input emulated.Element[emulated.Secp256k1Fp]
	// the last 20 bytes of the big-endian encoding of Input
	Tail frontend.Variable `gnark:",public"`
}

func (c *testElemToVarCircuit) Define(api frontend.API) error {
	u8s, err := ElemToU8(api, c.Input)
	if err != nil {
		return err
	}
	be := SwapEndianness(u8s)
	api.AssertIsEqual(U8ToVar(api, be[len(be)-20:]), c.Tail)
	return nil
}

func TestElemToVar(t *testing.T) {
	c := qt.New(t)
	r, err := rand.Int(rand.Reader, emulated.Secp256k1Fp{}.Modulus())
	c.Assert(err, qt.IsNil)
	tail := new(big.Int).SetBytes(r.FillBytes(make([]byte, 32))[12:])

	assert := test.NewAssert(t)
	assert.SolvingSucceeded(&testElemToVarCircuit{}, &testElemToVarCircuit{
		Input: emulated.ValueOf[emulated.Secp256k1Fp](r),
		Tail:  tail,
	}, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

type testStrictCmpCircuit struct {
	A, B     frontend.Variable
	Expected frontend.Variable `gnark:",public"`
}

func (c *testStrictCmpCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(StrictCmp(api, c.A, c.B), c.Expected)
	return nil
}

func TestStrictCmp(t *testing.T) {
	assert := test.NewAssert(t)
	opts := []test.TestingOption{test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16)}
	assert.SolvingSucceeded(&testStrictCmpCircuit{}, &testStrictCmpCircuit{A: 3, B: 3, Expected: 0}, opts...)
	assert.SolvingSucceeded(&testStrictCmpCircuit{}, &testStrictCmpCircuit{A: 3, B: 4, Expected: 1}, opts...)
}

type testHashersCircuit struct {
	A, B frontend.Variable
}

func (c *testHashersCircuit) Define(api frontend.API) error {
	for _, hFn := range []Hasher{MiMCHasher, PoseidonHasher} {
		h1, err := hFn(api, c.A, c.B)
		if err != nil {
			return err
		}
		h2, err := hFn(api, c.B, c.A)
		if err != nil {
			return err
		}
		// the inputs are distinct, so is the order dependent output
		api.AssertIsEqual(StrictCmp(api, h1, h2), 1)
	}
	return nil
}

func TestHashers(t *testing.T) {
	assert := test.NewAssert(t)
	assert.SolvingSucceeded(&testHashersCircuit{}, &testHashersCircuit{A: 1, B: 2},
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}
