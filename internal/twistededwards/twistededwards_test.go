package twistededwards

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	stdtwistededwards "github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/consensys/gnark/test"
	qt "github.com/frankban/quicktest"
	"github.com/iden3/go-iden3-crypto/babyjub"
)

func TestTE2RTETransform(t *testing.T) {
	c := qt.New(t)
	p := new(Point)
	p.X, _ = new(big.Int).SetString("20284931487578954787250358776722960153090567235942462656834196519767860852891", 10)
	p.Y, _ = new(big.Int).SetString("21185575020764391300398134415668786804224896114060668011215204645513129497221", 10)

	expectedRTE, _ := new(big.Int).SetString("5730906301301611931737915251485454905492689746504994962065413628158661689313", 10)
	pPrime := p.FromTEtoRTE()
	c.Assert(pPrime.X.Cmp(expectedRTE), qt.Equals, 0)

	pPrimePrime := pPrime.FromRTEtoTE()
	c.Assert(pPrimePrime.X.Cmp(p.X), qt.Equals, 0)
	c.Assert(pPrimePrime.Y.Cmp(p.Y), qt.Equals, 0)
}

type testCurveCircuit struct {
	// B8 in the iden3 form
	TE stdtwistededwards.Point
	// any point, expected on curve or not
	Other   stdtwistededwards.Point
	OnCurve frontend.Variable `gnark:",public"`
}

func (c *testCurveCircuit) Define(api frontend.API) error {
	curve, err := stdtwistededwards.NewEdCurve(api, tedwards.BN254)
	if err != nil {
		return err
	}
	params := curve.Params()
	base := stdtwistededwards.Point{X: params.Base[0], Y: params.Base[1]}
	// the iden3 generator is the gnark base point once reduced
	rte := FromTEtoRTECircuit(api, c.TE)
	api.AssertIsEqual(IsEqual(api, rte, base), 1)
	api.AssertIsEqual(IsOnCurve(api, params, rte), 1)
	// P - P is the neutral element
	api.AssertIsEqual(IsIdentity(api, curve.Add(rte, curve.Neg(rte))), 1)
	api.AssertIsEqual(IsIdentity(api, rte), 0)

	api.AssertIsEqual(IsOnCurve(api, params, c.Other), c.OnCurve)
	return nil
}

func TestCircuitHelpers(t *testing.T) {
	assert := test.NewAssert(t)
	b8 := stdtwistededwards.Point{X: babyjub.B8.X, Y: babyjub.B8.Y}
	rte := (&Point{X: babyjub.B8.X, Y: babyjub.B8.Y}).FromTEtoRTE()

	assert.SolvingSucceeded(&testCurveCircuit{}, &testCurveCircuit{
		TE:      b8,
		Other:   stdtwistededwards.Point{X: rte.X, Y: rte.Y},
		OnCurve: 1,
	}, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	assert.SolvingSucceeded(&testCurveCircuit{}, &testCurveCircuit{
		TE:      b8,
		Other:   stdtwistededwards.Point{X: 1, Y: 1},
		OnCurve: 0,
	}, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	// the iden3 coordinates do not satisfy the reduced equation
	assert.SolvingSucceeded(&testCurveCircuit{}, &testCurveCircuit{
		TE:      b8,
		Other:   b8,
		OnCurve: 0,
	}, test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}
