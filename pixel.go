package piv

import (
	"math"
	"math/cmplx"
)

// Real is the set of single-channel grey-level pixel types.
type Real interface {
	uint8 | uint16 | uint32 | int32 | float32 | float64
}

// Pixel is the set of element types an Image may hold: grey levels,
// packed RGBA and complex values.
type Pixel interface {
	Real | complex128 | RGBA
}

// RGBA is a packed 4-channel pixel. The struct has no padding, so a
// []RGBA can be reinterpreted as r,g,b,a byte quadruplets by codecs.
type RGBA struct {
	R, G, B, A uint8
}

// Luminance returns the Rec. 601 luma of the pixel in 0-255.
func (c RGBA) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Grey returns an opaque RGBA pixel with all colour channels set to v.
func Grey(v uint8) RGBA {
	return RGBA{R: v, G: v, B: v, A: 255}
}

// Abs returns the magnitude of z.
func Abs(z complex128) float64 { return cmplx.Abs(z) }

// AbsSqr returns the squared magnitude of z.
func AbsSqr(z complex128) float64 {
	re, im := real(z), imag(z)
	return re*re + im*im
}

// arith is the operator table for one pixel type. Tables are built once per
// type so expression evaluation never switches on types per pixel.
type arith[T Pixel] struct {
	add, sub, mul, div, mod func(a, b T) T
}

type numeric interface {
	Real | complex128
}

type integer interface {
	uint8 | uint16 | uint32 | int32
}

func numericArith[N numeric](div, mod func(a, b N) N) *arith[N] {
	return &arith[N]{
		add: func(a, b N) N { return a + b },
		sub: func(a, b N) N { return a - b },
		mul: func(a, b N) N { return a * b },
		div: div,
		mod: mod,
	}
}

// Integer division by zero yields zero instead of panicking.
func intDiv[I integer](a, b I) I {
	if b == 0 {
		return 0
	}
	return a / b
}

func intMod[I integer](a, b I) I {
	if b == 0 {
		return 0
	}
	return a % b
}

func floatDiv[F float32 | float64 | complex128](a, b F) F { return a / b }

func floatMod[F float32 | float64](a, b F) F {
	return F(math.Mod(float64(a), float64(b)))
}

// Modulo has no meaning for complex values.
func complexMod(a, b complex128) complex128 { return 0 }

func rgbaOp(op func(a, b uint8) uint8) func(a, b RGBA) RGBA {
	return func(a, b RGBA) RGBA {
		return RGBA{R: op(a.R, b.R), G: op(a.G, b.G), B: op(a.B, b.B), A: op(a.A, b.A)}
	}
}

var (
	arithUint8      = numericArith(intDiv[uint8], intMod[uint8])
	arithUint16     = numericArith(intDiv[uint16], intMod[uint16])
	arithUint32     = numericArith(intDiv[uint32], intMod[uint32])
	arithInt32      = numericArith(intDiv[int32], intMod[int32])
	arithFloat32    = numericArith(floatDiv[float32], floatMod[float32])
	arithFloat64    = numericArith(floatDiv[float64], floatMod[float64])
	arithComplex128 = numericArith(floatDiv[complex128], complexMod)
	arithRGBA       = &arith[RGBA]{
		add: rgbaOp(arithUint8.add),
		sub: rgbaOp(arithUint8.sub),
		mul: rgbaOp(arithUint8.mul),
		div: rgbaOp(arithUint8.div),
		mod: rgbaOp(arithUint8.mod),
	}
)

// arithFor returns the operator table for T.
func arithFor[T Pixel]() *arith[T] {
	var zero T
	var table any
	switch any(zero).(type) {
	case uint8:
		table = arithUint8
	case uint16:
		table = arithUint16
	case uint32:
		table = arithUint32
	case int32:
		table = arithInt32
	case float32:
		table = arithFloat32
	case float64:
		table = arithFloat64
	case complex128:
		table = arithComplex128
	case RGBA:
		table = arithRGBA
	}
	return table.(*arith[T])
}

// toComplex returns a function widening T to complex128. RGBA pixels are
// reduced to their luminance.
func toComplex[T Pixel]() func(T) complex128 {
	var zero T
	var fn any
	switch any(zero).(type) {
	case uint8:
		fn = func(v uint8) complex128 { return complex(float64(v), 0) }
	case uint16:
		fn = func(v uint16) complex128 { return complex(float64(v), 0) }
	case uint32:
		fn = func(v uint32) complex128 { return complex(float64(v), 0) }
	case int32:
		fn = func(v int32) complex128 { return complex(float64(v), 0) }
	case float32:
		fn = func(v float32) complex128 { return complex(float64(v), 0) }
	case float64:
		fn = func(v float64) complex128 { return complex(v, 0) }
	case complex128:
		fn = func(v complex128) complex128 { return v }
	case RGBA:
		fn = func(v RGBA) complex128 { return complex(v.Luminance(), 0) }
	}
	return fn.(func(T) complex128)
}

func clampRound(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, math.Round(v)))
}

// fromComplex returns a function narrowing complex128 to T. The imaginary
// part is discarded and integer targets saturate at their range.
func fromComplex[T Pixel]() func(complex128) T {
	var zero T
	var fn any
	switch any(zero).(type) {
	case uint8:
		fn = func(z complex128) uint8 { return uint8(clampRound(real(z), 0, math.MaxUint8)) }
	case uint16:
		fn = func(z complex128) uint16 { return uint16(clampRound(real(z), 0, math.MaxUint16)) }
	case uint32:
		fn = func(z complex128) uint32 { return uint32(clampRound(real(z), 0, math.MaxUint32)) }
	case int32:
		fn = func(z complex128) int32 { return int32(clampRound(real(z), math.MinInt32, math.MaxInt32)) }
	case float32:
		fn = func(z complex128) float32 { return float32(real(z)) }
	case float64:
		fn = func(z complex128) float64 { return real(z) }
	case complex128:
		fn = func(z complex128) complex128 { return z }
	case RGBA:
		fn = func(z complex128) RGBA { return Grey(uint8(clampRound(real(z), 0, math.MaxUint8))) }
	}
	return fn.(func(complex128) T)
}

// castFunc returns the element-wise conversion from T to U.
func castFunc[U, T Pixel]() func(T) U {
	if same, ok := any(func(v T) T { return v }).(func(T) U); ok {
		return same
	}
	to, from := toComplex[T](), fromComplex[U]()
	return func(v T) U { return from(to(v)) }
}
