package utils

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/consensys/gnark/std/math/uints"
)

// ElemToU8 converts an emulated element to a slice of uint8 by converting each
// limb to a slice of uint8 and concatenating them. The result is little-endian.
func ElemToU8[T emulated.FieldParams](api frontend.API, elem emulated.Element[T]) ([]uints.U8, error) {
	bf, err := uints.New[uints.U64](api)
	if err != nil {
		return nil, err
	}
	var res []uints.U8
	for _, limb := range elem.Limbs {
		bLimb := bf.ValueOf(limb)
		res = append(res, bLimb[:]...)
	}
	return res, nil
}

// U8ToVar converts a slice of uint8 to a variable by multiplying the current
// result by 256 and adding the next byte, starting from the most significant
// byte. The caller must ensure that the result fits in the native field.
func U8ToVar(api frontend.API, u8 []uints.U8) frontend.Variable {
	res := frontend.Variable(0)
	for i := 0; i < len(u8); i++ {
		res = api.Add(api.Mul(res, 256), u8[i].Val)
	}
	return res
}

// SwapEndianness returns a copy of u8 in the reverse order.
func SwapEndianness(u8 []uints.U8) []uints.U8 {
	swap := make([]uints.U8, 0, len(u8))
	for i := len(u8) - 1; i >= 0; i-- {
		swap = append(swap, u8[i])
	}
	return swap
}

// StrictCmp function compares a and b and returns:
//
//	1 a != b
//	0 a == b
func StrictCmp(api frontend.API, a, b frontend.Variable) frontend.Variable {
	return api.Sub(1, api.IsZero(api.Sub(a, b)))
}
