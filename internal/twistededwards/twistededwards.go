// twistededwards package provides helpers to move BabyJubJub points between
// the standard twisted Edwards form used by iden3 (a = 168700) and the reduced
// twisted Edwards form used by gnark (a = -1). Both forms share the y
// coordinate and the x coordinates are related by x' = x*(-f), where f is the
// square root of -168700 in the BN254 scalar field.
// See https://github.com/bellesmarta/baby_jubjub for more information.
package twistededwards

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
	stdtwistededwards "github.com/consensys/gnark/std/algebra/native/twistededwards"
)

var scalingFactor, _ = new(big.Int).SetString("6360561867910373094066688120553762416144456282423235903351243436111059670888", 10)

// negScalingFactor returns -f mod p.
func negScalingFactor() fr.Element {
	var negF fr.Element
	negF.SetBigInt(scalingFactor)
	return *negF.Neg(&negF)
}

// Point is a native point with big.Int coordinates.
type Point struct {
	X, Y *big.Int
}

// FromRTEtoTE converts a reduced twisted Edwards point to the standard form:
//
//	x = x'/(-f)
//	y = y'
func (p *Point) FromRTEtoTE() *Point {
	negF := negScalingFactor()
	var negFInv, x fr.Element
	negFInv.Inverse(&negF)
	x.SetBigInt(p.X)
	x.Mul(&x, &negFInv)
	return &Point{
		X: x.BigInt(new(big.Int)),
		Y: new(big.Int).Set(p.Y),
	}
}

// FromTEtoRTE converts a standard twisted Edwards point to the reduced form:
//
//	x' = x*(-f)
//	y' = y
func (p *Point) FromTEtoRTE() *Point {
	negF := negScalingFactor()
	var x fr.Element
	x.SetBigInt(p.X)
	x.Mul(&x, &negF)
	return &Point{
		X: x.BigInt(new(big.Int)),
		Y: new(big.Int).Set(p.Y),
	}
}

// FromTEtoRTECircuit is the in-circuit version of FromTEtoRTE. The scaling is
// a multiplication by a constant, so it adds no constraints.
func FromTEtoRTECircuit(api frontend.API, p stdtwistededwards.Point) stdtwistededwards.Point {
	negF := negScalingFactor()
	return stdtwistededwards.Point{
		X: api.Mul(p.X, negF.BigInt(new(big.Int))),
		Y: p.Y,
	}
}

// IsOnCurve returns 1 if p satisfies a*x^2 + y^2 == 1 + d*x^2*y^2 for the
// provided curve parameters and 0 otherwise. Unlike the AssertIsOnCurve
// method of the curve, it leaves the system satisfiable for points outside
// the curve.
func IsOnCurve(api frontend.API, params *stdtwistededwards.CurveParams, p stdtwistededwards.Point) frontend.Variable {
	xx := api.Mul(p.X, p.X)
	yy := api.Mul(p.Y, p.Y)
	lhs := api.Add(api.Mul(params.A, xx), yy)
	rhs := api.Add(1, api.Mul(params.D, xx, yy))
	return api.IsZero(api.Sub(lhs, rhs))
}

// IsIdentity returns 1 if p is the neutral element (0, 1) and 0 otherwise.
func IsIdentity(api frontend.API, p stdtwistededwards.Point) frontend.Variable {
	return api.And(api.IsZero(p.X), api.IsZero(api.Sub(p.Y, 1)))
}

// IsEqual returns 1 if both points have the same coordinates and 0 otherwise.
func IsEqual(api frontend.API, p, q stdtwistededwards.Point) frontend.Variable {
	return api.And(api.IsZero(api.Sub(p.X, q.X)), api.IsZero(api.Sub(p.Y, q.Y)))
}
